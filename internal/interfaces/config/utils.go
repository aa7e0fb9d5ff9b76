// Package config
package config

import "fmt"

func checkPort(port uint) *ValidResult {
	if port == 0 || port > 65535 {
		return ValidFail(fmt.Errorf("port %d out of range, expect 1-65535", port))
	}
	return ValidPass()
}
