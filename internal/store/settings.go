package store

import (
	"fmt"
	"strconv"
	"time"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// DefaultHourlyRate applies when the stored rate is missing or unparsable.
const DefaultHourlyRate = 406.25

// Config is the validated view of every recognized setting.
type Config struct {
	HourlyRate      float64
	WeekStart       time.Weekday
	CompanyName     string
	CompanyAddress  string
	CompanyABN      string
	PersonalName    string
	PersonalAddress string
	BankName        string
	BankBSB         string
	BankAccount     string
}

// LoadConfig reads every recognized setting, applying literal defaults
// for missing or malformed values.
func (s *Store) LoadConfig() (*Config, error) {
	all, err := s.GetAllSettings()
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(all))
	for _, kv := range all {
		values[kv.Key] = kv.Value
	}

	cfg := &Config{
		HourlyRate:      DefaultHourlyRate,
		WeekStart:       time.Sunday,
		CompanyName:     values["company_name"],
		CompanyAddress:  values["company_address"],
		CompanyABN:      values["company_abn"],
		PersonalName:    values["personal_name"],
		PersonalAddress: values["personal_address"],
		BankName:        values["bank_name"],
		BankBSB:         values["bank_bsb"],
		BankAccount:     values["bank_account"],
	}

	if rate, err := strconv.ParseFloat(values["hourly_rate"], 64); err == nil && rate > 0 {
		cfg.HourlyRate = rate
	}
	if values["week_start"] == "monday" {
		cfg.WeekStart = time.Monday
	}
	return cfg, nil
}
