package universe

import (
	"fmt"
	"testing"
)

func Benchmark_Tick(b *testing.B) {
	for _, size := range []int{64, 200, 512} {
		b.Run(fmt.Sprintf("%vx%v", size, size), func(b *testing.B) {
			u := New(&Options{Width: size, Height: size, Randomize: true, Seed: 1})
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.Tick()
			}
		})
	}
}

func Benchmark_Render(b *testing.B) {
	u := New(&Options{Width: 200, Height: 200, Randomize: true, Seed: 1})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = u.Render()
	}
}
