package hive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalk_PreOrder(t *testing.T) {
	h, _ := openSample(t)
	var paths []string
	err := h.Walk(h.Root(), func(_ NodeID, path string, _ *Node) error {
		paths = append(paths, path)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"",
		"Software", `Software\Vendor`, `Software\Other`,
		"Many", `Many\k0`, `Many\k1`, `Many\k2`, `Many\k3`, `Many\k4`,
		"Legacy", `Legacy\A`, `Legacy\B`,
		"Wïde",
	}, paths)
}

func TestWalk_SkipChildren(t *testing.T) {
	h, _ := openSample(t)
	var paths []string
	err := h.Walk(h.Root(), func(_ NodeID, path string, n *Node) error {
		paths = append(paths, path)
		if n.Name == "Many" || n.Name == "Software" {
			return SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"", "Software", "Many", "Legacy", `Legacy\A`, `Legacy\B`, "Wïde"}, paths)
}

func TestWalk_StopsOnError(t *testing.T) {
	h, _ := openSample(t)
	stop := errors.New("stop")
	count := 0
	err := h.Walk(h.Root(), func(_ NodeID, path string, _ *Node) error {
		count++
		if path == `Software\Vendor` {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 3, count)
}

func TestWalk_Subtree(t *testing.T) {
	h, _ := openSample(t)
	id, err := h.ResolveNode("Legacy")
	require.NoError(t, err)

	var paths []string
	require.NoError(t, h.Walk(id, func(_ NodeID, path string, _ *Node) error {
		paths = append(paths, path)
		return nil
	}))
	require.Equal(t, []string{"Legacy", `Legacy\A`, `Legacy\B`}, paths)
}
