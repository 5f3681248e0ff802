package dom

import "testing"

func TestDispatchEventTargetAndBubbling(t *testing.T) {
	outer := NewElement("div")
	inner := NewElement("button")
	outer.AppendChild(inner)

	var order []string
	var seenTarget *Node
	inner.AddEventListener("click", func(e *Event) {
		order = append(order, "inner")
		seenTarget = e.Target
	})
	outer.AddEventListener("click", func(e *Event) {
		order = append(order, "outer")
		if e.Target != inner {
			t.Errorf("outer listener saw target %v, want inner", e.Target)
		}
	})

	inner.DispatchEvent(&Event{Type: "click"})

	if len(order) != 2 || order[0] != "inner" || order[1] != "outer" {
		t.Errorf("order = %v, want [inner outer]", order)
	}
	if seenTarget != inner {
		t.Error("Target not defaulted to dispatching node")
	}
}

func TestDispatchEventTypeFilter(t *testing.T) {
	n := NewElement("input")
	clicks := 0
	n.AddEventListener("click", func(*Event) { clicks++ })

	n.DispatchEvent(&Event{Type: "input", Value: "x"})
	if clicks != 0 {
		t.Errorf("click listener fired for input event")
	}
}
