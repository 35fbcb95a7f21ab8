package compiler

// Scope selects the id table used to resolve symbolic resource ids.
// The VendorInfo list reuses small ids that collide with the global ones,
// so both tables are kept apart.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeVendorInfo
)

// Well-known resource ids.
const (
	IDRsrcType    uint8 = 1
	IDRsrcName    uint8 = 2
	IDMinorBaseOS uint8 = 10
	IDMinorLength uint8 = 11
	IDBoardID     uint8 = 32
	IDVendorInfo  uint8 = 36
)

var globalIDs = map[string]uint8{
	"sRsrcType":   IDRsrcType,
	"sRsrcName":   IDRsrcName,
	"MinorBaseOS": IDMinorBaseOS,
	"MinorLength": IDMinorLength,
	"BoardId":     IDBoardID,
	"VendorInfo":  IDVendorInfo,
}

var vendorInfoIDs = map[string]uint8{
	"VendorID":  1,
	"SerialNum": 2,
	"RevLevel":  3,
	"PartNum":   4,
	"Date":      5,
}

func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeVendorInfo:
		return "VendorInfo"
	}
	return "unknown"
}

// Child returns the scope for a resource list nested under the resource with the given id.
func (s Scope) Child(id uint8) Scope {
	if s == ScopeGlobal && id == IDVendorInfo {
		return ScopeVendorInfo
	}
	return ScopeGlobal
}

func (s Scope) table() map[string]uint8 {
	if s == ScopeVendorInfo {
		return vendorInfoIDs
	}
	return globalIDs
}

// ResolveID returns the numeric id of a symbolic resource name within scope.
func ResolveID(scope Scope, name string) (uint8, error) {
	if id, ok := scope.table()[name]; ok {
		return id, nil
	}
	return 0, UnknownResourceID(nil, scope, name)
}

// IDName returns the symbolic name of id within scope.
// Returns an empty string for ids without a name.
func IDName(scope Scope, id uint8) string {
	for name, v := range scope.table() {
		if v == id {
			return name
		}
	}
	return ""
}
