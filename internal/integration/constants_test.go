package integration_test

const (
	// User related constants
	TestUserEmail     = "test@example.com"
	TestUserPassword  = "Test123!@#"
	TestAdminEmail    = "admin@example.com"
	TestAdminPassword = "Admin123!@#"

	// Catalog related constants
	TestMovieTitle = "Interstellar"
	TestVenueName  = "Galaxy Cinemas"
	TestScreenName = "Screen 1"

	// Show 1 is upcoming, show 2 has already started.
	TestShowId        = 1
	TestStartedShowId = 2

	// Show 1 seats: ids 1-4 are row A regular seats at the base price,
	// ids 5-6 are row B premium seats with a seat level override.
	TestSeatA1 = 1
	TestSeatA2 = 2
	TestSeatA3 = 3
	TestSeatA4 = 4
	TestSeatB1 = 5
	TestSeatB2 = 6
)
