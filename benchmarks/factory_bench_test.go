package benchmarks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ajitpratap0/hl7-sdk-go/pkg/factory"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/logging"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/message"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/protocol"
)

const admitText = "MSH|^~\\&|ADT1|GOOD HEALTH HOSPITAL|GHH LAB|GHH|198808181126|SECURITY|ADT^A01|MSG00001|P|2.5\r" +
	"EVN|A01|198808181123\r" +
	"PID|1||PATID1234^5^M11||EVERYMAN^ADAM^A||19610615|M\r" +
	"NK1|1|JONES^BARBARA^K|SPO\r" +
	"PV1|1|I|2000^2012^01||||004777^LEBAUER^SIDNEY^J.\r"

func newFactory() *factory.Factory {
	return factory.New(factory.WithLogger(logging.NewNop()))
}

// BenchmarkFactoryOperations benchmarks the construction paths of a factory
func BenchmarkFactoryOperations(b *testing.B) {
	b.Run("CreateMSH", func(b *testing.B) {
		f := newFactory()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = f.CreateMSH()
		}
	})

	b.Run("CreateMessage", func(b *testing.B) {
		f := newFactory()
		b.ReportAllocs()
		b.SetBytes(int64(len(admitText)))
		for i := 0; i < b.N; i++ {
			if _, err := f.CreateMessage(admitText); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("SetFieldSeparator", func(b *testing.B) {
		f := newFactory()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			f.SetFieldSeparator("|")
		}
	})

	b.Run("ParseBatch/10", func(b *testing.B) {
		benchmarkParseBatch(b, 10)
	})

	b.Run("ParseBatch/100", func(b *testing.B) {
		benchmarkParseBatch(b, 100)
	})

	b.Run("Concurrent/10", func(b *testing.B) {
		benchmarkConcurrentCreate(b, 10)
	})
}

func benchmarkParseBatch(b *testing.B, size int) {
	f := newFactory()
	texts := make([]string, size)
	for i := range texts {
		texts[i] = strings.Replace(admitText, "MSG00001", fmt.Sprintf("MSG%05d", i), 1)
	}
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := f.ParseBatch(ctx, texts); err != nil {
			b.Fatal(err)
		}
	}
}

// benchmarkConcurrentCreate measures creates racing with setters on one factory
func benchmarkConcurrentCreate(b *testing.B, goroutines int) {
	f := newFactory()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var wg sync.WaitGroup
		for g := 0; g < goroutines; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				if g%2 == 0 {
					f.SetNull("N/A")
					return
				}
				_ = f.CreateMSH()
			}(g)
		}
		wg.Wait()
	}
}

func BenchmarkMessageEncode(b *testing.B) {
	msg, err := message.NewMessage(admitText, protocol.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = msg.String()
	}
}
