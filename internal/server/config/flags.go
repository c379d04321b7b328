package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/verischol/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN
//	-m          in-memory storage
//	-s string   JWT HMAC secret key
//	-t int      session token validity, minutes
//	-o int      one-time code validity, minutes
//	-q float    code redemption rate, attempts per second
//	-w int      code redemption burst
//	-x string   system salt for record fingerprints
//	-k int      scrypt cost (log2 N)
//	-j int      concurrent key derivations
//	-r          retain plaintext debug copies
//	-z          echo one-time codes in login responses
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-l int      report link validity, minutes
//
// Boolean flags should be given as -m or -m=true.
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.InMemory, "m", config.InMemory, "keep state in memory")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionTokenValidityDuration.Minutes()), "session token validity (in minutes)")
	otpValidity := fs.Int("o", int(config.OTPValidityDuration.Minutes()), "one-time code validity (in minutes)")

	fs.Float64Var(&config.OTPRedeemRate, "q", config.OTPRedeemRate, "code redemption attempts per second")
	fs.IntVar(&config.OTPRedeemBurst, "w", config.OTPRedeemBurst, "code redemption burst")
	fs.StringVar(&config.SystemSalt, "x", config.SystemSalt, "system salt")
	fs.IntVar(&config.KDFCostLog2, "k", config.KDFCostLog2, "scrypt cost, log2(N)")
	fs.IntVar(&config.KDFConcurrency, "j", config.KDFConcurrency, "concurrent key derivations")
	fs.BoolVar(&config.DebugRetainPlaintext, "r", config.DebugRetainPlaintext, "retain plaintext debug copies")
	fs.BoolVar(&config.DemoOTP, "z", config.DemoOTP, "echo one-time codes in login responses")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	reportValidity := fs.Int("l", int(config.ReportURLValidity.Minutes()), "report link validity (in minutes)")

	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], fs)); err != nil {
		panic(err)
	}

	config.SessionTokenValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.OTPValidityDuration = time.Duration(*otpValidity) * time.Minute
	config.ReportURLValidity = time.Duration(*reportValidity) * time.Minute
}
