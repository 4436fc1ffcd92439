package internal

// Dtype is the downstream column type representation, distinct from the
// service's native type vocabulary.
type Dtype string

const (
	DtypeText     Dtype = "text"
	DtypeFloating Dtype = "floating"
	DtypeInteger  Dtype = "integer"
	DtypeBoolean  Dtype = "boolean"
	DtypeObject   Dtype = "object"
)

// warehouse view types are declared as java types
var warehouseTypeMapping = map[string]Dtype{
	"java.lang.String":  DtypeText,
	"java.lang.Double":  DtypeFloating,
	"java.lang.Float":   DtypeFloating,
	"java.lang.Integer": DtypeInteger,
	"java.lang.Boolean": DtypeBoolean,
	"org.intermine.objectstore.query.ClobAccess": DtypeObject,
	"java.util.Date": DtypeObject,
	"int":            DtypeInteger,
}

// mapWarehouseType translates a service type tag into a Dtype. Unknown tags
// are a hard failure, never silently defaulted.
func mapWarehouseType(tag string) (Dtype, error) {
	dtype, ok := warehouseTypeMapping[tag]
	if !ok {
		return "", &UnmappedTypeError{TypeTag: tag}
	}
	return dtype, nil
}
