package main

import "github.com/ledgerworks/ms-go-pipelines/cmd"

func main() {
	cmd.Execute()
}
