package main

import "github.com/kamilpajak/tsmend/cmd/tsmend"

func main() {
	tsmend.Execute()
}
