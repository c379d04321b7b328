package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/verischol/internal/flagx"
	"github.com/dmitrijs2005/verischol/internal/timex"
)

// JsonConfig mirrors Config for unmarshalling. Durations use timex.Duration,
// which accepts strings such as "5m" as well as integer nanoseconds. Pointer
// fields distinguish "absent" from an explicit zero or false.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn"`
	InMemory                     *bool          `json:"in_memory"`
	SecretKey                    string         `json:"secret_key"`
	SessionTokenValidityDuration timex.Duration `json:"session_token_validity_duration"`
	OTPValidityDuration          timex.Duration `json:"otp_validity_duration"`
	OTPRedeemRate                *float64       `json:"otp_redeem_rate"`
	OTPRedeemBurst               *int           `json:"otp_redeem_burst"`
	SystemSalt                   string         `json:"system_salt"`
	KDFCostLog2                  *int           `json:"kdf_cost_log2"`
	KDFConcurrency               *int           `json:"kdf_concurrency"`
	DebugRetainPlaintext         *bool          `json:"debug_retain_plaintext"`
	DemoOTP                      *bool          `json:"demo_otp"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	ReportURLValidity            timex.Duration `json:"report_url_validity"`
}

// parseJson overlays values from the JSON file named by -c / -config, or by
// VERISCHOL_CONFIG, onto config. Keys missing from the file leave the current
// value in place. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:], os.LookupEnv)
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.SystemSalt, c.SystemSalt)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.SessionTokenValidityDuration.Duration > 0 {
		config.SessionTokenValidityDuration = c.SessionTokenValidityDuration.Duration
	}
	if c.OTPValidityDuration.Duration > 0 {
		config.OTPValidityDuration = c.OTPValidityDuration.Duration
	}
	if c.ReportURLValidity.Duration > 0 {
		config.ReportURLValidity = c.ReportURLValidity.Duration
	}

	if c.InMemory != nil {
		config.InMemory = *c.InMemory
	}
	if c.OTPRedeemRate != nil {
		config.OTPRedeemRate = *c.OTPRedeemRate
	}
	if c.OTPRedeemBurst != nil {
		config.OTPRedeemBurst = *c.OTPRedeemBurst
	}
	if c.KDFCostLog2 != nil {
		config.KDFCostLog2 = *c.KDFCostLog2
	}
	if c.KDFConcurrency != nil {
		config.KDFConcurrency = *c.KDFConcurrency
	}
	if c.DebugRetainPlaintext != nil {
		config.DebugRetainPlaintext = *c.DebugRetainPlaintext
	}
	if c.DemoOTP != nil {
		config.DemoOTP = *c.DemoOTP
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
