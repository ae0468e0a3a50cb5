// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fmath

// TypeDesc identifies one of the Numbers types at runtime.
// It is used for diagnostics and for resolving conversion rules.
type TypeDesc uint8

const (
	TypeUnknown TypeDesc = iota
	TypeUint8
	TypeInt8
	TypeUint16
	TypeInt16
	TypeUint32
	TypeInt32
	TypeUint64
	TypeInt64
	TypeHalf
	TypeFloat
	TypeDouble
)

// TypeOf returns the TypeDesc for T.
func TypeOf[T Numbers]() TypeDesc {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return TypeUint8
	case int8:
		return TypeInt8
	case uint16:
		return TypeUint16
	case int16:
		return TypeInt16
	case uint32:
		return TypeUint32
	case int32:
		return TypeInt32
	case uint64:
		return TypeUint64
	case int64:
		return TypeInt64
	case Float16:
		return TypeHalf
	case float32:
		return TypeFloat
	case float64:
		return TypeDouble
	default:
		return TypeUnknown
	}
}

// String returns the conventional short name of the type ("uint8", "half",
// "float", ...).
func (t TypeDesc) String() string {
	switch t {
	case TypeUint8:
		return "uint8"
	case TypeInt8:
		return "int8"
	case TypeUint16:
		return "uint16"
	case TypeInt16:
		return "int16"
	case TypeUint32:
		return "uint"
	case TypeInt32:
		return "int"
	case TypeUint64:
		return "uint64"
	case TypeInt64:
		return "int64"
	case TypeHalf:
		return "half"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	default:
		return "unknown"
	}
}

// Size returns the size of one element in bytes, or 0 for TypeUnknown.
func (t TypeDesc) Size() int {
	switch t {
	case TypeUint8, TypeInt8:
		return 1
	case TypeUint16, TypeInt16, TypeHalf:
		return 2
	case TypeUint32, TypeInt32, TypeFloat:
		return 4
	case TypeUint64, TypeInt64, TypeDouble:
		return 8
	default:
		return 0
	}
}

// Bits returns the width of the type in bits.
func (t TypeDesc) Bits() uint {
	return uint(t.Size()) * 8
}

// IsFloat reports whether t is a floating-point type (including half).
func (t TypeDesc) IsFloat() bool {
	return t == TypeHalf || t == TypeFloat || t == TypeDouble
}

// IsSigned reports whether t is a signed integer type.
func (t TypeDesc) IsSigned() bool {
	switch t {
	case TypeInt8, TypeInt16, TypeInt32, TypeInt64:
		return true
	}
	return false
}
