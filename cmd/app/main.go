package main

import (
	"github.com/sigasystems/digital-negotiation-book-api/app"
)

func main() {
	app.Run()
}
