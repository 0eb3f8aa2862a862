package domain

import "fmt"

type WarningKind string

const (
	OutOfStock      WarningKind = "out_of_stock"
	OperationFailed WarningKind = "operation_failed"
)

type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpUpdate Op = "update"
)

const (
	MsgOutOfStock   = "requested quantity out of stock"
	MsgAddFailed    = "error adding product"
	MsgRemoveFailed = "error removing product"
	MsgUpdateFailed = "error changing product quantity"
)

// Warning is the user-visible outcome of a cart operation that did not change
// the cart.
type Warning struct {
	Kind      WarningKind `json:"kind"`
	Op        Op          `json:"op"`
	ProductID int64       `json:"productId"`
	Message   string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s (%s product %d)", w.Message, w.Op, w.ProductID)
}

func OutOfStockWarning(op Op, productID int64) Warning {
	return Warning{Kind: OutOfStock, Op: op, ProductID: productID, Message: MsgOutOfStock}
}

func FailureWarning(op Op, productID int64) Warning {
	msg := MsgUpdateFailed
	switch op {
	case OpAdd:
		msg = MsgAddFailed
	case OpRemove:
		msg = MsgRemoveFailed
	}
	return Warning{Kind: OperationFailed, Op: op, ProductID: productID, Message: msg}
}
