package navbar

import (
	"errors"
	"fmt"
)

var ErrRouteNotFound = errors.New("route not found")

// RouteResolver turns a route name into a path.
type RouteResolver interface {
	Resolve(name string) (string, error)
}

// RouteTable is a fixed name to path mapping.
type RouteTable map[string]string

func (t RouteTable) Resolve(name string) (string, error) {
	if path, ok := t[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
}
