package contracts

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	errorSelector = []byte{0x08, 0xc3, 0x79, 0xa0}
	panicSelector = []byte{0x4e, 0x48, 0x7b, 0x71}
)

// Solidity panic codes.
var panicReasons = map[uint64]string{
	0x00: "generic compiler inserted panic",
	0x01: "assert failed",
	0x11: "arithmetic overflow or underflow",
	0x12: "division or modulo by zero",
	0x21: "invalid enum value",
	0x22: "invalid storage byte array",
	0x31: "pop on empty array",
	0x32: "array index out of bounds",
	0x41: "out of memory",
	0x51: "call to zero initialized function",
}

// RevertError is a contract call that reverted. Name is "Error" for
// require/revert with a message, "Panic" for failed asserts and bound
// checks, the custom error name otherwise, and empty when the contract gave
// no reason.
type RevertError struct {
	Method string
	Name   string
	Reason string
	Data   []byte
}

func (e *RevertError) Error() string {
	switch {
	case e.Name == "":
		return fmt.Sprintf("%s reverted without a reason", e.Method)
	case e.Name == "Error":
		return fmt.Sprintf("%s reverted: %s", e.Method, e.Reason)
	case e.Reason == "":
		return fmt.Sprintf("%s reverted with %s()", e.Method, e.Name)
	default:
		return fmt.Sprintf("%s reverted with %s: %s", e.Method, e.Name, e.Reason)
	}
}

// AsRevert returns the RevertError in err's chain.
func AsRevert(err error) (*RevertError, bool) {
	var revert *RevertError
	if errors.As(err, &revert) {
		return revert, true
	}
	return nil, false
}

// revertData digs the revert payload out of a node error. found is false
// when err is not a revert.
func revertData(err error) (data []byte, found bool) {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		switch d := dataErr.ErrorData().(type) {
		case string:
			if decoded, decodeErr := hexutil.Decode(d); decodeErr == nil {
				return decoded, true
			}
		case []byte:
			return d, true
		}
	}
	if strings.Contains(err.Error(), "execution reverted") {
		return nil, true
	}
	return nil, false
}

// decodeRevert turns revert data into a RevertError using the custom
// errors declared in contractABI.
func decodeRevert(contractABI abi.ABI, method string, data []byte) *RevertError {
	result := &RevertError{Method: method, Data: data}
	if len(data) < 4 {
		return result
	}
	selector := data[:4]
	switch {
	case bytes.Equal(selector, errorSelector):
		reason, err := abi.UnpackRevert(data)
		result.Name = "Error"
		if err != nil {
			result.Reason = hexutil.Encode(data)
		} else {
			result.Reason = reason
		}
		return result
	case bytes.Equal(selector, panicSelector):
		result.Name = "Panic"
		if len(data) >= 36 {
			code := new(big.Int).SetBytes(data[4:36])
			desc, known := panicReasons[code.Uint64()]
			if !known || !code.IsUint64() {
				desc = "unknown panic"
			}
			result.Reason = fmt.Sprintf("%s (0x%x)", desc, code)
		}
		return result
	}
	for name, e := range contractABI.Errors {
		if !bytes.Equal(e.ID[:4], selector) {
			continue
		}
		result.Name = name
		values, err := e.Unpack(data)
		if err != nil {
			result.Reason = hexutil.Encode(data[4:])
			return result
		}
		if args, ok := values.([]any); ok && len(args) > 0 {
			parts := make([]string, 0, len(args))
			for i, arg := range args {
				parts = append(parts, fmt.Sprintf("%s=%v", e.Inputs[i].Name, arg))
			}
			result.Reason = strings.Join(parts, ", ")
		}
		return result
	}
	result.Name = hexutil.Encode(selector)
	return result
}
