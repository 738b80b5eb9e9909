package domain

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// ScriptedActor replays a fixed sequence of responses. Meant for tests and
// deterministic simulations. Once the script runs out it checks when it can
// and folds otherwise.
type ScriptedActor struct {
	mu      sync.Mutex
	script  []ActionResponse
	pointer int
}

// NewScriptedActor builds an actor that plays the given responses in order.
func NewScriptedActor(script ...ActionResponse) *ScriptedActor {
	return &ScriptedActor{script: script}
}

func (a *ScriptedActor) Act(ctx context.Context, req ActionRequest) (ActionResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.pointer < len(a.script) {
		resp := a.script[a.pointer]
		a.pointer++
		return resp, nil
	}

	if req.CanDo(ActionCheck) {
		return ActionResponse{Action: ActionCheck}, nil
	}
	return ActionResponse{Action: ActionFold}, nil
}

// CallingActor always continues: it checks when free and calls any bet.
// Useful as a baseline opponent.
type CallingActor struct{}

func (CallingActor) Act(ctx context.Context, req ActionRequest) (ActionResponse, error) {
	if req.CanDo(ActionCheck) {
		return ActionResponse{Action: ActionCheck}, nil
	}
	return ActionResponse{Action: ActionCall}, nil
}

// ConsoleActor prompts a human on a terminal. Input is a single line such
// as "call", "check", "fold" or "raise 120" (raise amount is the total bet
// for the street). Unparseable input is prompted again.
type ConsoleActor struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewConsoleActor wires a console actor to the given reader and writer,
// typically os.Stdin and os.Stdout.
func NewConsoleActor(in io.Reader, out io.Writer) *ConsoleActor {
	return &ConsoleActor{
		In:  bufio.NewReader(in),
		Out: out,
	}
}

func (a *ConsoleActor) Act(ctx context.Context, req ActionRequest) (ActionResponse, error) {
	fmt.Fprintf(a.Out, "\n[%s] %s to act | board: %s | hole: %s | pot: %d\n",
		req.Street, req.SeatName, req.CommunityCards.String(), req.HoleCards.String(), req.Pot)
	fmt.Fprintf(a.Out, "to call: %d, raise to between %d and %d, stack: %d\n",
		req.ToCall, req.MinRaiseTo, req.MaxRaiseTo, req.Stack)

	for {
		if err := ctx.Err(); err != nil {
			return ActionResponse{}, err
		}

		fmt.Fprintf(a.Out, "action %v> ", req.Legal)
		line, err := a.In.ReadString('\n')
		if err != nil {
			return ActionResponse{}, err
		}

		resp, ok := parseConsoleAction(line)
		if !ok {
			fmt.Fprintln(a.Out, "could not parse that, try e.g. `call` or `raise 120`")
			continue
		}
		return resp, nil
	}
}

func parseConsoleAction(line string) (ActionResponse, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return ActionResponse{}, false
	}

	switch ActionKind(fields[0]) {
	case ActionFold, ActionCheck, ActionCall:
		return ActionResponse{Action: ActionKind(fields[0])}, true
	case ActionRaise:
		if len(fields) < 2 {
			return ActionResponse{}, false
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			return ActionResponse{}, false
		}
		return ActionResponse{Action: ActionRaise, Amount: amount}, true
	}

	return ActionResponse{}, false
}
