package data

import (
	_ "embed"
)

//go:embed fixtures/demo_listings.json
var DemoListings []byte

//go:embed fixtures/demo_events.json
var DemoEvents []byte
