package services

// UOMOptions returns the list of Unit of Measurement options seeded into the
// unit_of_measures collection.
var UOMOptions = []string{
	"Nos",
	"Sqm",
	"Sqft",
	"Rmt",
	"Cum",
	"Kg",
	"MT",
	"Lot",
	"Set",
	"Lumpsum",
	"Ltr",
	"Pair",
	"Bag",
	"Box",
	"Roll",
	"Bundle",
	"Trip",
	"Day",
	"Month",
	"Hour",
}
