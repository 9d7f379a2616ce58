package pointer

import "github.com/san-kum/sparkfield/internal/field"

type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Next(frame int, width, height float64) field.Input {
	return field.Input{}
}
