package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

//go:generate mockgen -package mocks -destination mocks/ssm.go . ParameterStore

const (
	practicumTokenParameter = "practicum-token"
	telegramTokenParameter  = "telegram-token"
	telegramChatIDParameter = "telegram-chat-id"
)

type Config struct {
	Dev               bool          `envconfig:"DEV" default:"false"`
	LogLevel          string        `envconfig:"LOG_LEVEL"`
	PracticumEndpoint string        `envconfig:"PRACTICUM_ENDPOINT" default:"https://practicum.yandex.ru/api/user_api/homework_statuses/"`
	RetryPeriod       time.Duration `envconfig:"RETRY_PERIOD" default:"10m"`
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	SSMParametersPath string        `envconfig:"SSM_PARAMETERS_PATH"`

	PracticumToken string `envconfig:"PRACTICUM_TOKEN"`
	TelegramToken  string `envconfig:"TELEGRAM_TOKEN"`
	TelegramChatID string `envconfig:"TELEGRAM_CHAT_ID"`
}

// ParameterStore is the subset of the SSM client used to resolve secrets.
type ParameterStore interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// New reads envFile (if it exists) into the process environment without overriding
// variables that are already set, then processes the environment.
func New(ctx context.Context, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file=%s: %w", envFile, err)
		}
	}

	res := &Config{}
	if err := envconfig.Process("", res); err != nil {
		return nil, fmt.Errorf("envconfig process: %w", err)
	}

	if res.SSMParametersPath != "" {
		awsConf, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		if err := res.loadParameters(ctx, ssm.NewFromConfig(awsConf)); err != nil {
			return nil, err
		}
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}

	return res, nil
}

// Validate reports the first required variable that is missing or empty.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{name: "PRACTICUM_TOKEN", value: c.PracticumToken},
		{name: "TELEGRAM_TOKEN", value: c.TelegramToken},
		{name: "TELEGRAM_CHAT_ID", value: c.TelegramChatID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingVariable, r.name)
		}
	}
	return nil
}

// loadParameters fills only the secrets the environment left empty.
func (c *Config) loadParameters(ctx context.Context, store ParameterStore) error {
	targets := []struct {
		name  string
		value *string
	}{
		{name: practicumTokenParameter, value: &c.PracticumToken},
		{name: telegramTokenParameter, value: &c.TelegramToken},
		{name: telegramChatIDParameter, value: &c.TelegramChatID},
	}

	for _, t := range targets {
		if *t.value != "" {
			continue
		}
		v, err := getParameter(ctx, store, strings.TrimSuffix(c.SSMParametersPath, "/")+"/"+t.name)
		if err != nil {
			return err
		}
		*t.value = v
	}

	return nil
}

func getParameter(ctx context.Context, store ParameterStore, name string) (string, error) {
	param, err := store.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("get SSM parameter=%s: %w", name, err)
	}
	if param.Parameter == nil || param.Parameter.Value == nil {
		return "", nil
	}

	return *param.Parameter.Value, nil
}
