// Package constants provides shared constants for the loan-scenarios application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CurrencyPlaces is the number of decimal places currency outputs are rounded to
	CurrencyPlaces = 2

	// RatePlaces is the number of decimal places the APR estimate is rounded to
	RatePlaces = 3

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// InvariantTolerance is the tolerance used when checking credit allocation invariants
	InvariantTolerance = 1e-6
)

// Buydown allocation constants
const (
	// BuydownStepCostPct is the cost of one buydown step as a percentage of the loan amount
	BuydownStepCostPct = 0.50

	// BuydownStepRate is the note rate reduction (percentage points) bought by one step
	BuydownStepRate = 0.125

	// MaxBreakEvenMonths is the longest break-even a buydown step may have and still be taken (7 years)
	MaxBreakEvenMonths = 84

	// APRPointsSpreadFactor spreads prepaid points over 30 days per 360 in the APR estimate
	APRPointsSpreadFactor = 30.0 / 360.0
)

// FHA mortgage insurance premium constants
const (
	// FHAHighBalanceThreshold is the loan amount above which an FHA loan is high-balance
	FHAHighBalanceThreshold = 726200.0

	// FHALongTermMonths is the term above which an FHA loan is long-term (15 years)
	FHALongTermMonths = 180

	// FHALTVBoundary is the inclusive LTV boundary between the lower and higher MIP factors
	FHALTVBoundary = 0.90
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default scenario configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRequestsPerSecond is the default sustained per-client request rate
	DefaultRequestsPerSecond = 5.0

	// DefaultRateLimitBurst is the default per-client burst size
	DefaultRateLimitBurst = 10

	// DefaultRedisKeyPrefix namespaces template keys in Redis
	DefaultRedisKeyPrefix = "loan-scenarios:template:"

	// MaxScenariosPerRequest bounds how many scenarios one compute request may carry
	MaxScenariosPerRequest = 10
)
