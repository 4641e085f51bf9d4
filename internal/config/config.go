package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string

	// LLM providers
	GeminiAPIKey   string
	GeminiModelID  string
	BedrockModelID string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// Email
	EmailProvider     string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	SESFromEmail      string
	SESFromName       string

	// LeadRecipients are the clinic mailboxes that receive qualified lead
	// notifications.
	LeadRecipients []string

	// Clinic identity, injected into the assistant persona and email footer.
	ClinicName     string
	ClinicPhone    string
	ClinicHours    string
	Practitioners  []string
	ServiceTerms   []string
	UrgencyTerms   []string
	ChatMaxHistory int

	AdminJWTSecret     string
	CORSAllowedOrigins []string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:  getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		BedrockModelID: getEnv("BEDROCK_MODEL_ID", ""),

		AWSRegion:          getEnv("AWS_REGION", "eu-west-3"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		EmailProvider:     strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "auto"))),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", ""),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", ""),

		LeadRecipients: getEnvAsList("LEAD_RECIPIENTS", "contact@lumident.fr"),

		ClinicName:  getEnv("CLINIC_NAME", "Cabinet Dentaire Lumident"),
		ClinicPhone: getEnv("CLINIC_PHONE", "01 42 00 00 00"),
		ClinicHours: getEnv("CLINIC_HOURS", "lundi-vendredi 9h-19h, samedi 9h-13h"),
		Practitioners: getEnvAsList("CLINIC_PRACTITIONERS",
			"martin,lefevre,nguyen"),
		ServiceTerms: getEnvAsList("CLINIC_SERVICES",
			"blanchiment,implant,couronne,détartrage,orthodontie,invisalign,facette,prothèse,extraction,carie,dévitalisation,gouttière,parodontie"),
		UrgencyTerms: getEnvAsList("URGENCY_KEYWORDS",
			"urgence,urgent,douleur,mal aux dents,rage de dents,abcès,saignement,dent cassée,emergency,tooth pain"),
		ChatMaxHistory: getEnvAsInt("CHAT_MAX_HISTORY", 100),

		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", ""),
		RateLimitPerSecond: getEnvAsFloat("RATE_LIMIT_PER_SECOND", 5),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated environment variable, trimming
// whitespace and dropping empty entries.
func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
