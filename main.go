/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/harou24/heye/cmd"

func main() {
	cmd.Execute()
}
