package tax

import "strings"

// Activity selects which regime tables apply to a business.
type Activity string

const (
	Commerce Activity = "comercio"
	Services Activity = "servicos"
	Industry Activity = "industria"
)

var Activities = []Activity{Commerce, Services, Industry}

// ParseActivity accepts the wire names; an empty value means commerce.
func ParseActivity(raw string) (Activity, bool) {
	switch Activity(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Commerce:
		return Commerce, true
	case Services:
		return Services, true
	case Industry:
		return Industry, true
	}
	return "", false
}
