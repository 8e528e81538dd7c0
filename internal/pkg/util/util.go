package util

import "reflect"

// HasImplementation 檢查介面是否有具體實體值
// 介面包了 nil pointer 也會回傳 false
func HasImplementation(i interface{}) bool {
	if i == nil {
		return false
	}

	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice, reflect.Func:
		return !v.IsNil()
	}
	return !v.IsZero()
}
