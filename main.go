package main

import "nippo/internal/app"

func main() {
	app.Main()
}
