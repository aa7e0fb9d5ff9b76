// Package config
package config

import (
	"errors"

	"github.com/ro-aviation/skyhub/internal/interfaces/log"
)

// SiteConfig carries the site identity: the application namespace that
// prefixes every collection path in the store, and the public-facing
// airline branding.
type SiteConfig struct {
	AppId           string `json:"app_id"`
	AirlineName     string `json:"airline_name"`
	RobloxGroupLink string `json:"roblox_group_link"`
}

func defaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		AppId:           "ro-aviation",
		AirlineName:     "easyJet Ro-Aviation",
		RobloxGroupLink: "https://www.roblox.com/communities/35102208/UK-Flight-Simulator",
	}
}

func (config *SiteConfig) checkValid(_ log.LoggerInterface) *ValidResult {
	if config.AppId == "" {
		return ValidFail(errors.New("site.app_id must not be empty"))
	}
	if config.AirlineName == "" {
		config.AirlineName = defaultSiteConfig().AirlineName
	}
	return ValidPass()
}
