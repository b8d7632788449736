package auth

import "time"

// LoginCooldownActive reports whether lastAttempt still falls inside the
// trailing window, a time.ParseDuration expression such as "24h". Attempt
// counters only reset once the window has fully elapsed.
func LoginCooldownActive(lastAttempt time.Time, window string) (bool, error) {
	d, err := time.ParseDuration(window)
	if err != nil {
		return false, err
	}
	return time.Since(lastAttempt) < d, nil
}
