// Package ui holds the small startup-banner and console-message helpers
// cmd/dirhunt prints before a run starts.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// Version is set during build or defaults to 1.0.0.
var Version = "1.0.0"

// Banner prints the dirhunt ASCII art banner.
func Banner() {
	art := `
██████╗ ██╗██████╗ ██╗  ██╗██╗   ██╗███╗   ██╗████████╗
██╔══██╗██║██╔══██╗██║  ██║██║   ██║████╗  ██║╚══██╔══╝
██║  ██║██║██████╔╝███████║██║   ██║██╔██╗ ██║   ██║
██║  ██║██║██╔══██╗██╔══██║██║   ██║██║╚██╗██║   ██║
██████╔╝██║██║  ██║██║  ██║╚██████╔╝██║ ╚████║   ██║
╚═════╝ ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝   ╚═╝
`
	fmt.Println(color.RedString(art))
	fmt.Println(color.CyanString("        [ concurrent directory & file discovery ]"))
	fmt.Println(color.YellowString("                    v" + Version))
}

// PrintInfo prints an info message in cyan.
func PrintInfo(format string, args ...interface{}) {
	fmt.Println(color.CyanString("[INFO] ") + fmt.Sprintf(format, args...))
}

// PrintSuccess prints a success message in green.
func PrintSuccess(format string, args ...interface{}) {
	fmt.Println(color.GreenString("[+] ") + fmt.Sprintf(format, args...))
}

// PrintWarning prints a warning message in yellow.
func PrintWarning(format string, args ...interface{}) {
	fmt.Println(color.YellowString("[!] ") + fmt.Sprintf(format, args...))
}

// PrintErrorMsg prints an error message in red.
func PrintErrorMsg(format string, args ...interface{}) {
	fmt.Println(color.RedString("[-] ") + fmt.Sprintf(format, args...))
}
