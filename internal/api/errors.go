package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Op names a backend operation. It prefixes errors and selects the
// fallback message shown when the server gives no usable detail.
type Op string

const (
	OpListWords      Op = "list words"
	OpCreateWord     Op = "create word"
	OpUpdateWord     Op = "update word"
	OpDeleteWord     Op = "delete word"
	OpStartTest      Op = "start test"
	OpQuestion       Op = "load question"
	OpAnswer         Op = "check answer"
	OpNext           Op = "next question"
	OpFinish         Op = "finish test"
	OpLogin          Op = "login"
	OpRegister       Op = "register"
	OpLogout         Op = "logout"
	OpForgotPassword Op = "forgot password"
	OpResetPassword  Op = "reset password"
)

// ConnectivityMessage is shown whenever the backend cannot be reached.
const ConnectivityMessage = "Cannot reach the server. Check that the backend is running and LUGAT_API_URL points at it."

// DefaultFallback is used when neither the error nor the caller offers a message.
const DefaultFallback = "Something went wrong. Please try again."

var fallbacks = map[Op]string{
	OpListWords:      "Could not load words",
	OpCreateWord:     "Could not save word",
	OpUpdateWord:     "Could not update word",
	OpDeleteWord:     "Could not delete word",
	OpStartTest:      "Error starting test",
	OpQuestion:       "Could not load question",
	OpAnswer:         "Error checking answer",
	OpNext:           "Could not load question",
	OpFinish:         "Could not finish test",
	OpLogin:          "Login failed",
	OpRegister:       "Registration failed",
	OpLogout:         "Logout failed",
	OpForgotPassword: "Could not send reset link",
	OpResetPassword:  "Could not reset password",
}

// Fallback returns the fixed message for op.
func (o Op) Fallback() string {
	if msg, ok := fallbacks[o]; ok {
		return msg
	}
	return DefaultFallback
}

// ErrMalformedResponse indicates a 2xx response whose body did not have
// the expected shape.
var ErrMalformedResponse = errors.New("malformed response")

// RequestError is a non-2xx response. Message is the human-readable text
// extracted from the body, possibly empty.
type RequestError struct {
	Op      Op
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

// ConnectivityError indicates the backend could not be reached at all.
type ConnectivityError struct {
	Op  Op
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: backend unreachable: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// UserFacing is implemented by errors whose text is already fit to show.
type UserFacing interface {
	UserMessage() string
}

// Message maps err to a single line for display. Server-provided detail
// wins, then the caller's fallback, then the operation's fixed fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var uf UserFacing
	if errors.As(err, &uf) {
		return uf.UserMessage()
	}

	var ce *ConnectivityError
	if errors.As(err, &ce) {
		return ConnectivityMessage
	}

	var re *RequestError
	if errors.As(err, &re) {
		if re.Message != "" {
			return re.Message
		}
		if fallback != "" {
			return fallback
		}
		return re.Op.Fallback()
	}

	if fallback != "" {
		return fallback
	}
	return DefaultFallback
}

// IsStatus reports whether err is a RequestError with the given status.
func IsStatus(err error, status int) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == status
}

// node is a JSON value that keeps object keys in document order.
type node struct {
	str   string
	isStr bool
	items []node
	keys  []string
	vals  []node
}

// extractMessage finds the first human-readable string in an error body.
// A top-level "detail" string is taken as is. Otherwise the first string
// found depth-first is returned, prefixed by the object key it sits under.
func extractMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	root, err := parseNode(dec)
	if err != nil {
		return ""
	}
	for i, k := range root.keys {
		if k == "detail" && root.vals[i].isStr && strings.TrimSpace(root.vals[i].str) != "" {
			return root.vals[i].str
		}
	}
	return scan(root)
}

func scan(n node) string {
	switch {
	case n.isStr:
		return n.str
	case n.items != nil:
		for _, it := range n.items {
			if it.isStr && it.str != "" {
				return it.str
			}
		}
		for _, it := range n.items {
			if msg := scan(it); msg != "" {
				return msg
			}
		}
	case n.keys != nil:
		for i, k := range n.keys {
			if msg := scan(n.vals[i]); msg != "" {
				return k + ": " + msg
			}
		}
	}
	return ""
}

func parseNode(dec *json.Decoder) (node, error) {
	tok, err := dec.Token()
	if err != nil {
		return node{}, err
	}
	switch v := tok.(type) {
	case string:
		return node{str: v, isStr: true}, nil
	case json.Delim:
		switch v {
		case '[':
			n := node{items: []node{}}
			for dec.More() {
				child, err := parseNode(dec)
				if err != nil {
					return node{}, err
				}
				n.items = append(n.items, child)
			}
			_, err := dec.Token()
			return n, err
		case '{':
			n := node{keys: []string{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return node{}, err
				}
				key, _ := keyTok.(string)
				child, err := parseNode(dec)
				if err != nil {
					return node{}, err
				}
				n.keys = append(n.keys, key)
				n.vals = append(n.vals, child)
			}
			_, err := dec.Token()
			return n, err
		}
	}
	// numbers, booleans and null carry no message
	return node{}, nil
}
