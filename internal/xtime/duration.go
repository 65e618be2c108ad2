package xtime

import (
	"time"
)

// Duration is a time.Duration that reads and writes the standard Go duration
// syntax ("5s", "1m30s") as TOML text.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Std converts back to the standard library type for use with tickers and
// deadlines.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
