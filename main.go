package main

import (
	"github.com/yeisme/greeter/cmd"
)

func main() {
	cmd.Execute()
}
