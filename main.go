package main

import "freelance-market-api/app"

func main() {
	app.Run()
}
