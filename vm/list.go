package vm

import "unsafe"

// ObjList is an ordered, resizable sequence of values.
type ObjList struct {
	Obj
	Elements []Value
}

// NewList creates a list with numElements null elements.
func (vm *VM) NewList(numElements int) *ObjList {
	list := &ObjList{}
	if numElements > 0 {
		list.Elements = make([]Value, numElements)
		for i := range list.Elements {
			list.Elements[i] = Null
		}
	}
	vm.appendObj(&list.Obj, ObjTypeList, vm.ListClass,
		uint64(unsafe.Sizeof(*list))+uint64(numElements)*valueSize)
	return list
}

// Insert inserts value at index, shifting later elements up one slot.
// index may equal the element count to append.
func (l *ObjList) Insert(index int, value Value) {
	l.Elements = append(l.Elements, Null)
	copy(l.Elements[index+1:], l.Elements[index:])
	l.Elements[index] = value
}

// RemoveAt removes and returns the element at index.
func (l *ObjList) RemoveAt(index int) Value {
	removed := l.Elements[index]
	copy(l.Elements[index:], l.Elements[index+1:])
	l.Elements = l.Elements[:len(l.Elements)-1]
	return removed
}

// IndexOf returns the index of the first element equal to value, or -1.
func (l *ObjList) IndexOf(value Value) int {
	for i, e := range l.Elements {
		if ValuesEqual(e, value) {
			return i
		}
	}
	return -1
}

// Swap exchanges the elements at the two indices.
func (l *ObjList) Swap(a, b int) {
	l.Elements[a], l.Elements[b] = l.Elements[b], l.Elements[a]
}
