// Command countryctl manages the country record store out-of-band: seeding
// records from exports and listing what is stored.
package main

func main() {
	Execute()
}
