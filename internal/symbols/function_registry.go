package symbols

import "github.com/proveland/prove/internal/types"

// FunctionKey is the compound key a function is registered under: (verb,
// name). Verb is "" for built-ins and imported stubs registered without a
// specific verb.
type FunctionKey struct {
	Verb string
	Name string
}

// Signature is one overload of a function: its resolved parameter/return
// types and the declaring verb.
type Signature struct {
	Verb   string
	Name   string
	Params []types.Type
	Return types.Type
}

// FunctionRegistry maps (verb, name) to the list of overloads declared
// under that key.
type FunctionRegistry struct {
	byKey map[FunctionKey][]*Signature
}

// NewFunctionRegistry creates an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{byKey: make(map[FunctionKey][]*Signature)}
}

// Register adds sig as an overload under (verb, name).
func (r *FunctionRegistry) Register(sig *Signature) {
	key := FunctionKey{Verb: sig.Verb, Name: sig.Name}
	r.byKey[key] = append(r.byKey[key], sig)
}

// Candidates returns every overload registered under (verb, name). Per
// , resolution tries (verb, name) first, then ("", name) as a
// fallback for built-ins, then — since a call expression never names the
// declaring verb — every verb registered under name.
func (r *FunctionRegistry) Candidates(verb, name string) []*Signature {
	if verb != "" {
		if sigs, ok := r.byKey[FunctionKey{Verb: verb, Name: name}]; ok && len(sigs) > 0 {
			return sigs
		}
	}
	if sigs, ok := r.byKey[FunctionKey{Verb: "", Name: name}]; ok && len(sigs) > 0 {
		return sigs
	}
	var all []*Signature
	for key, sigs := range r.byKey {
		if key.Name == name {
			all = append(all, sigs...)
		}
	}
	return all
}

// Resolve returns the overload matching argTypes by arity and structural
// compatibility. When arity does not match any candidate, the first
// candidate is still returned (with ok=false) so callers can diagnose
// arity mismatches (E330) rather than report "undefined function".
func (r *FunctionRegistry) Resolve(verb, name string, argTypes []types.Type) (*Signature, bool) {
	candidates := r.Candidates(verb, name)
	if len(candidates) == 0 {
		return nil, false
	}

	var arityMatch []*Signature
	for _, c := range candidates {
		if len(c.Params) == len(argTypes) {
			arityMatch = append(arityMatch, c)
		}
	}
	if len(arityMatch) == 0 {
		return candidates[0], false
	}
	if len(arityMatch) == 1 {
		return arityMatch[0], true
	}

	for _, c := range arityMatch {
		if allCompatible(c.Params, argTypes) {
			return c, true
		}
	}
	return arityMatch[0], true
}

// ResolveAny additionally disambiguates by first-argument type name when
// several overloads share arity and none match exactly — used by call
// sites that already know the first argument's concrete type name.
func (r *FunctionRegistry) ResolveAny(name string, argTypes []types.Type) (*Signature, bool) {
	var pool []*Signature
	for key, sigs := range r.byKey {
		if key.Name == name {
			pool = append(pool, sigs...)
		}
	}
	if len(pool) == 0 {
		return nil, false
	}
	if len(argTypes) == 0 {
		return pool[0], len(pool) == 1
	}
	firstName := argTypes[0].String()
	for _, c := range pool {
		if len(c.Params) == len(argTypes) && c.Params[0].String() == firstName {
			return c, true
		}
	}
	return pool[0], false
}

// All returns every registered signature across every (verb, name) key, for
// callers that need to scan the whole registry (e.g. the emitter's header
// pre-scan, ).
func (r *FunctionRegistry) All() []*Signature {
	var out []*Signature
	for _, sigs := range r.byKey {
		out = append(out, sigs...)
	}
	return out
}

func allCompatible(params, args []types.Type) bool {
	for i := range params {
		if !types.Compatible(params[i], args[i]) {
			return false
		}
	}
	return true
}

// TypeRegistry maps type names to their resolved types.
type TypeRegistry struct {
	byName map[string]types.Type
}

// NewTypeRegistry creates a registry pre-populated with the built-in
// primitives.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{byName: make(map[string]types.Type)}
	r.Register("Integer", types.Integer)
	r.Register("Decimal", types.Decimal)
	r.Register("Boolean", types.Boolean)
	r.Register("String", types.StringT)
	r.Register("Char", types.CharT)
	r.Register("Byte", types.ByteT)
	r.Register("Unit", types.UnitT)
	r.Register("Error", types.ErrorDomain)
	return r
}

// Register adds or replaces the type registered under name.
func (r *TypeRegistry) Register(name string, t types.Type) {
	r.byName[name] = t
}

// Resolve looks up a registered type by name.
func (r *TypeRegistry) Resolve(name string) (types.Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}
