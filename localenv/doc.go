// Package localenv is an in-process host runtime implementing native.Env.
//
// The bridge instance is an *Object whose methods are Go functions operating
// on native slots. References live in a host-side table behind bounded
// frames, and every acquire and release is counted so tests can prove that
// calls leave no reference behind:
//
//	env := localenv.New()
//	obj := localenv.NewObject("Plugin").
//		Define("isEven", func(env *localenv.Env, args []native.Slot) (native.Slot, error) {
//			return native.BoolSlot(args[0].Int()%2 == 0), nil
//		})
//
//	st := env.Stats()
//	st.Live() // references currently held
//
// An Env is not safe for concurrent use; create one per goroutine.
package localenv
