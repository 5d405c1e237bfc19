package reactive_test

import (
	"fmt"

	"github.com/go-drift/reactive/pkg/reactive"
)

type Counter struct {
	Count int
}

type Config struct {
	Host string
}

func ExampleReactive() {
	c := &Counter{}
	r := reactive.Reactive(c).(*reactive.Proxy)

	r.Set("Count", 41)
	r.Set("Count", r.Get("Count").(int)+1)

	fmt.Println(r.Get("Count"), c.Count)
	// Output: 42 42
}

func ExampleReadonly() {
	reactive.SetDebugMode(false)
	defer reactive.SetDebugMode(true)

	cfg := &Config{Host: "localhost"}
	ro := reactive.Readonly(cfg).(*reactive.Proxy)

	ok := ro.Set("Host", "elsewhere")
	fmt.Println(ok, ro.Get("Host"))
	// Output: false localhost
}

func ExampleToRaw() {
	c := &Counter{Count: 3}
	r := reactive.Reactive(c)

	fmt.Println(reactive.ToRaw(r) == c)
	// Output: true
}

func ExampleMarkRaw() {
	c := reactive.MarkRaw(&Counter{})

	fmt.Println(reactive.Reactive(c) == any(c), reactive.IsProxy(reactive.Reactive(c)))
	// Output: true false
}
