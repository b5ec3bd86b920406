// Command hivectl inspects Windows registry hive files and derives the boot
// key of SYSTEM hives.
package main

func main() {
	execute()
}
