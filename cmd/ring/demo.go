package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Avik32223/ringd/pkg/ring"
)

func printList(w io.Writer, values []int) {
	if len(values) == 0 {
		fmt.Fprintln(w, "List is empty!")
		return
	}
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = fmt.Sprint(v)
	}
	fmt.Fprintln(w, strings.Join(s, " "))
}

func printRing(w io.Writer, title string, r *ring.Ring) {
	fmt.Fprintf(w, "%s: ", title)
	printList(w, r.ToSlice())
	fmt.Fprint(w, "Reverse: ")
	printList(w, r.ToSliceReverse())
}

// demo walks through every ring operation and prints what happens.
func demo(w io.Writer) error {
	r := ring.New()
	for i := 1; i <= 4; i++ {
		r.Prepend(i)
	}
	printRing(w, "After inserting 1..4 at the front", r)
	fmt.Fprintln(w, "Size:", r.Len())

	v, err := r.ValueAt(2)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Value at index 2:", v)
	fmt.Fprintln(w, "Index of 3:", r.IndexOf(3))
	fmt.Fprintln(w, "Contains 5:", r.Contains(5))

	r.Append(5)
	if _, err := r.InsertAt(10, 2); err != nil {
		return err
	}
	printRing(w, "After appending 5 and inserting 10 at index 2", r)

	if _, err := r.InsertAt(11, r.Len()+1); err != nil {
		fmt.Fprintln(w, "Insert at", r.Len()+1, "failed:", err)
	}

	front, _ := r.RemoveFront()
	back, _ := r.RemoveBack()
	at, err := r.RemoveAt(1)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed %d from the front, %d from the back and %d at index 1\n", front, back, at)
	printRing(w, "Now", r)

	r.Reverse()
	printRing(w, "After reversing", r)

	first, last := r.First(), r.Last()
	fv, _ := r.Value(first)
	lv, _ := r.Value(last)
	nv, _ := r.Value(r.Next(last))
	pv, _ := r.Value(r.Prev(first))
	fmt.Fprintf(w, "First %d, last %d, after last %d, before first %d\n", fv, lv, nv, pv)

	e, err := r.NodeAt(1)
	if err != nil {
		return err
	}
	if err := r.SetValue(e, 42); err != nil {
		return err
	}
	printRing(w, "After setting index 1 to 42", r)

	r.Destroy()
	printRing(w, "After destroy", r)
	return nil
}
