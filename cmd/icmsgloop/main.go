// Command icmsgloop is a host-side demo and scenario runner for the icmsg
// channel. It bonds two endpoints over an in-process loopback pair and
// drives one side from an interactive REPL while the other side echoes
// everything it receives back to its peer.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/jangala-dev/icmsg-go"
	"github.com/jangala-dev/icmsg-go/internal/logx"
	"github.com/jangala-dev/icmsg-go/internal/scenario"
	"github.com/jangala-dev/icmsg-go/loopback"
	"github.com/jangala-dev/icmsg-go/transport"
	"github.com/jangala-dev/icmsg-go/x/conv"
	"github.com/jangala-dev/icmsg-go/x/timex"
)

const (
	demoBufLen = 256
	demoAlign  = 4
)

func makeRegion(bufLen, align uint32) []byte {
	return make([]byte, transport.RegionHeaderSize(align)+bufLen)
}

// bondPair bonds both ends of a loopback.Pair concurrently — bonding is a
// two-party handshake, so neither side can finish alone.
func bondPair(ctx context.Context, pair *loopback.Pair, bufLen, align uint32) (*icmsg.Channel, *icmsg.Channel, error) {
	regionA := makeRegion(bufLen, align)
	regionB := makeRegion(bufLen, align)

	cfgA := icmsg.MemoryConfig{Region: regionA, BufLen: bufLen, Align: align}
	cfgB := icmsg.MemoryConfig{Region: regionB, BufLen: bufLen, Align: align}

	type result struct {
		ch  *icmsg.Channel
		err error
	}
	doneA := make(chan result, 1)
	doneB := make(chan result, 1)

	go func() {
		ch, err := icmsg.Init(ctx, cfgA, cfgB, pair.A.Notifier, pair.A.Waiter, loopback.SystemClock{})
		doneA <- result{ch, err}
	}()
	go func() {
		ch, err := icmsg.Init(ctx, cfgB, cfgA, pair.B.Notifier, pair.B.Waiter, loopback.SystemClock{})
		doneB <- result{ch, err}
	}()

	ra, rb := <-doneA, <-doneB
	if ra.err != nil {
		return nil, nil, ra.err
	}
	if rb.err != nil {
		return nil, nil, rb.err
	}
	return ra.ch, rb.ch, nil
}

// runEcho drains peer and sends everything it receives straight back,
// until ctx is cancelled.
func runEcho(ctx context.Context, peer *icmsg.Channel) {
	buf := make([]byte, 65536)
	for {
		n, err := peer.TryRecv(buf)
		switch err {
		case nil:
			_ = peer.Send(buf[:n])
		case transport.ErrEmpty:
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Millisecond):
			}
		default:
			logx.Printf("echo: %v", err)
			return
		}
	}
}

func printStats(ch *icmsg.Channel) {
	sender, receiver := ch.Split()
	var wrHex, rdHex, wrDec, rdDec, tsDec [20]byte
	fmt.Printf("wr_idx=%s (%s) rd_idx=%s (%s) ts=%sms\n",
		conv.U32Hex(wrHex[:], sender.WrIdx()),
		conv.Utoa(wrDec[:], uint64(sender.WrIdx())),
		conv.U32Hex(rdHex[:], receiver.RdIdx()),
		conv.Utoa(rdDec[:], uint64(receiver.RdIdx())),
		conv.Itoa(tsDec[:], timex.NowMs()))
}

func runScenario(ch *icmsg.Channel, s *scenario.Scenario) {
	for _, msg := range s.Messages {
		for {
			err := ch.Send([]byte(msg))
			if err == nil {
				break
			}
			if err == transport.ErrInsufficientCapacity {
				time.Sleep(time.Millisecond)
				continue
			}
			logx.Printf("scenario %s: send: %v", s.Name, err)
			return
		}
	}
	fmt.Printf("scenario %s: sent %d message(s)\n", s.Name, len(s.Messages))
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pair := loopback.NewPair()
	ours, theirs, err := bondPair(ctx, pair, demoBufLen, demoAlign)
	cancel()
	if err != nil {
		logx.Printf("bonding failed: %v", err)
		os.Exit(1)
	}

	echoCtx, stopEcho := context.WithCancel(context.Background())
	defer stopEcho()
	go runEcho(echoCtx, theirs)

	fmt.Println("icmsgloop ready. Commands: send <text>, recv, stats, load <file.json>, quit")
	scan := bufio.NewScanner(os.Stdin)
	for scan.Scan() {
		fields, err := shlex.Split(scan.Text())
		if err != nil || len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "send":
			text := strings.Join(fields[1:], " ")
			if err := ours.Send([]byte(text)); err != nil {
				fmt.Println("send error:", err)
			}
		case "recv":
			buf := make([]byte, 65536)
			n, err := ours.TryRecv(buf)
			if err != nil {
				fmt.Println("recv:", err)
				continue
			}
			fmt.Printf("recv: %q\n", buf[:n])
		case "stats":
			printStats(ours)
		case "load":
			if len(fields) < 2 {
				fmt.Println("usage: load <file.json>")
				continue
			}
			raw, err := os.ReadFile(fields[1])
			if err != nil {
				fmt.Println("load:", err)
				continue
			}
			s, err := scenario.Parse(raw)
			if err != nil {
				fmt.Println("load:", err)
				continue
			}
			runScenario(ours, s)
		case "quit":
			return
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}
