package config

import "strconv"

const (
	refreshSingleFlightVar = "REFRESH_SINGLE_FLIGHT"
	loginRouteVar          = "LOGIN_ROUTE"
	callbackAddrVar        = "CALLBACK_ADDR"
)

type SessionConfig interface {
	GetRefreshSingleFlight() bool
	GetLoginRoute() string
	GetCallbackAddr() string
}

type Session struct{}

var _ SessionConfig = Session{}

// GetRefreshSingleFlight reports whether concurrent 401s share one refresh call
func (Session) GetRefreshSingleFlight() bool {
	v, err := strconv.ParseBool(GetEnv(refreshSingleFlightVar, "true"))
	if err != nil {
		return true
	}
	return v
}

func (Session) GetLoginRoute() string {
	return GetEnv(loginRouteVar, "/login")
}

// GetCallbackAddr is the loopback address the login callback receiver listens on
func (Session) GetCallbackAddr() string {
	return GetEnv(callbackAddrVar, "127.0.0.1:8765")
}
