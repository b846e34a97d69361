// Package mapper builds flat records from decoded JSON documents using a
// declarative table of attribute name to key path.
//
// A Path is either a single key or an ordered list of keys applied one level
// at a time. Keys that cannot be resolved never fail the build: the field is
// kept in the record and marked absent.
//
// # Usage
//
//	var categoryMapping = mapper.Mapping{
//	    "id_":         mapper.Key("category_id"),
//	    "name":        mapper.Key("name"),
//	    "currency":    mapper.KeyPath("info", "currency_code"),
//	}
//
//	rec := mapper.Build(categoryMapping, doc)
//	name := rec.Str("name") // nil when absent
package mapper
