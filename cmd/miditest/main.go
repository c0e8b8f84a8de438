package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "cc":
		sendCC(os.Args[2:])
	case "sweep":
		sweep(os.Args[2:])
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                        - List all MIDI ports")
	fmt.Println("  cc <port> <ch> <cc> <val>   - Send one Control Change")
	fmt.Println("  sweep <port> <ch> <cc>      - Sweep a controller 0..127")
	fmt.Println("  poll                        - Poll for device changes")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- midi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		for i, p := range outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! MIDI backend is hung.")
		fmt.Println("On macOS: sudo killall coreaudiod midiserver")
	}
}

func findPort(name string) drivers.Out {
	want := strings.ToLower(name)
	for _, p := range midi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p
		}
	}
	return nil
}

func sendCC(args []string) {
	if len(args) < 4 {
		usage()
		return
	}

	port := findPort(args[0])
	if port == nil {
		fmt.Printf("No output port matching %q\n", args[0])
		return
	}

	channel, _ := strconv.Atoi(args[1])
	control, _ := strconv.Atoi(args[2])
	value, _ := strconv.Atoi(args[3])

	send, err := midi.SendTo(port)
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}

	fmt.Printf("Sending CC ch=%d cc=%d val=%d to %s\n", channel, control, value, port.String())
	if err := send(midi.ControlChange(uint8(channel), uint8(control), uint8(value))); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Done!")
}

func sweep(args []string) {
	if len(args) < 3 {
		usage()
		return
	}

	port := findPort(args[0])
	if port == nil {
		fmt.Printf("No output port matching %q\n", args[0])
		return
	}

	channel, _ := strconv.Atoi(args[1])
	control, _ := strconv.Atoi(args[2])

	send, err := midi.SendTo(port)
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}

	fmt.Printf("Sweeping cc=%d on ch=%d via %s...\n", control, channel, port.String())
	for v := 0; v <= 127; v++ {
		send(midi.ControlChange(uint8(channel), uint8(control), uint8(v)))
		time.Sleep(20 * time.Millisecond)
	}
	fmt.Println("Done!")
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds...")
	fmt.Println("Connect/disconnect devices to test. Ctrl+C to exit.")

	last := ""

	for {
		var names []string
		for _, p := range midi.GetOutPorts() {
			names = append(names, p.String())
		}

		current := strings.Join(names, ",")
		if current != last {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Outputs: %v\n", names)
			last = current
		}

		time.Sleep(2 * time.Second)
	}
}
