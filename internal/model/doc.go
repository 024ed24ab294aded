// Package model is the symbol model adapter consumed by the lifecycle generator.
//
// It describes class declarations of the target language the way a compiler
// front-end would expose them: types with a single base and a list of
// interfaces, methods with attributes and modifiers, constructors with their
// chained initializers. The model is read from YAML (hand-written or produced
// by a front-end) or msgpack, and is read-only once loaded.
//
// Key types:
//   - TypeID: namespace + name
//   - TypeSymbol: a class declaration (sealed/external flags, base, members)
//   - MethodSymbol / ConstructorSymbol / Parameter
//   - TypeGraph: the queryable set of types (ancestors, capability lookups)
package model
