// Command themeswitch switches and persists the dark/light theme preference.
package main

func main() {
	Execute()
}
