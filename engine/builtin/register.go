package builtin

import "github.com/ardnew/ctext/engine"

// RegisterAll adds every built-in operator to the registry.
func RegisterAll(r *engine.Registry) error {
	groups := [][]engine.Operator{
		textOperators(),
		caseOperators(),
		sliceOperators(),
		cipherOperators(),
		countOperators(),
		lineOperators(),
		listOperators(),
		ioOperators(),
		randomOperators(),
		numberOperators(),
		markupOperators(),
		calcOperators(),
		hashOperators(),
	}

	for _, ops := range groups {
		for _, op := range ops {
			if err := r.Register(op); err != nil {
				return err
			}
		}
	}

	return nil
}

// NewRegistry returns a registry holding every built-in operator.
func NewRegistry() *engine.Registry {
	r := engine.NewRegistry()
	if err := RegisterAll(r); err != nil {
		panic(err)
	}

	return r
}
