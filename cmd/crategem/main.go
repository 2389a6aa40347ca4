package main

import "github.com/crategem/crategem/cmd/crategem/internal"

func main() {
	internal.Execute()
}
