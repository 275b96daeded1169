package main

import (
	"github.com/streamify/streamify/app"
)

func main() {
	app.New(nil).Run()
}
