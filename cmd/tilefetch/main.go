package main

import (
	"github.com/mapgrid/tilefetch/internal/app"
)

func main() {
	app.Run()
}
