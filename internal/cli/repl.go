package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/fibnum/internal/bignum"
	apperrors "github.com/agbru/fibnum/internal/errors"
	"github.com/agbru/fibnum/internal/fibonacci"
	"github.com/agbru/fibnum/internal/format"
	"github.com/agbru/fibnum/internal/logging"
	"github.com/agbru/fibnum/internal/ui"
)

// REPLConfig holds the initial settings of a REPL session.
type REPLConfig struct {
	// LimbBits is the limb width of the bignum commands: 8, 16, 32 or 64.
	LimbBits int
	// Algo is the calculator used by "fib".
	Algo string
	// Timeout bounds each "fib" and "phi" calculation.
	Timeout time.Duration
	// Hex displays "fib" results in hexadecimal.
	Hex bool
}

// REPL is an interactive calculator over the multi-limb integers.
type REPL struct {
	cfg     REPLConfig
	factory fibonacci.CalculatorFactory
	engine  engine
	in      io.Reader
	out     io.Writer
	logger  logging.Logger
}

// MaxShiftBits caps the bit length of a "shl" result. Decimal rendering is
// quadratic in the limb count, so the cap keeps the answer interactive at
// every limb width.
const MaxShiftBits = 1 << 16

// errUsage marks a command called with the wrong arguments.
var errUsage = errors.New("wrong number of arguments")

// NewREPL creates a session. Invalid limb widths fall back to 64 bits and an
// unknown algorithm falls back to fast doubling at the session's width.
func NewREPL(factory fibonacci.CalculatorFactory, cfg REPLConfig) *REPL {
	if !fibonacci.ValidLimbWidth(cfg.LimbBits) {
		cfg.LimbBits = 64
	}
	if _, err := factory.Get(cfg.Algo); err != nil {
		cfg.Algo = fibonacci.DoublingCalculatorName(cfg.LimbBits)
	}
	return &REPL{
		cfg:     cfg,
		factory: factory,
		engine:  newEngine(cfg.LimbBits),
		in:      os.Stdin,
		out:     os.Stdout,
		logger:  logging.NewZerologAdapter(zerolog.Nop()),
	}
}

// SetInput replaces the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput replaces the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// SetLogger sets the logger receiving command diagnostics.
func (r *REPL) SetLogger(l logging.Logger) { r.logger = l }

// Start reads and executes commands until "exit" or end of input.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprintf(r.out, "%sfibnum[u%d]> %s", ui.ColorGreen(), r.cfg.LimbBits, ui.ColorReset())
		line, err := reader.ReadString('\n')
		if strings.TrimSpace(line) != "" && !r.Execute(ctx, line) {
			return
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// Execute runs one command line and reports whether the session continues.
func (r *REPL) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "exit", "quit", "q":
		fmt.Fprintln(r.out, "Goodbye!")
		return false
	case "help", "h", "?":
		r.printHelp()
	case "fib":
		err = r.cmdFib(ctx, args)
	case "phi":
		err = r.cmdPhi(ctx, args)
	case "add", "sub", "mul", "divmod", "cmp":
		err = r.cmdBinary(cmd, args)
	case "shl":
		err = r.cmdShl(args)
	case "bit":
		err = r.cmdBit(args)
	case "dump":
		err = r.cmdDump(args)
	case "check":
		err = r.cmdCheck(args)
	case "limb":
		err = r.cmdLimb(args)
	case "algo":
		err = r.cmdAlgo(args)
	case "list", "ls":
		r.cmdList()
	case "karatsuba":
		err = r.cmdKaratsuba(args)
	case "hex":
		r.cfg.Hex = !r.cfg.Hex
		fmt.Fprintf(r.out, "Hexadecimal output: %v\n", r.cfg.Hex)
	default:
		err = fmt.Errorf("unknown command %q, type 'help' for the list", cmd)
	}
	if err != nil {
		r.logger.Debug("repl command failed", logging.String("command", cmd), logging.Int("limb_bits", r.cfg.LimbBits), logging.Err(err))
		if errors.Is(err, errUsage) {
			err = fmt.Errorf("%w for %q, type 'help' for usage", err, cmd)
		}
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return true
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s%sfibnum interactive mode%s\n", ui.ColorBold(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%sUnsigned integers over %d-bit limbs. Fibonacci with %s.%s\n\n",
		ui.ColorDim(), r.cfg.LimbBits, r.cfg.Algo, ui.ColorReset())
}

var replHelp = [][2]string{
	{"fib <n>", "F(n) with the current algorithm"},
	{"phi <n>", "φ^n in Z[φ], as A + Bφ"},
	{"add|sub|mul <a> <b>", "arithmetic on decimal operands"},
	{"divmod <a> <b>", "quotient and remainder"},
	{"shl <a> <k>", "a shifted left by k bits"},
	{"bit <a> <i>", "bit i of a"},
	{"cmp <a> <b>", "-1, 0 or 1"},
	{"dump <a>", "raw limbs of a"},
	{"check [n]", "sequence and factorial self-check up to n"},
	{"limb <8|16|32|64>", "change the limb width"},
	{"algo <name>", "change the Fibonacci calculator"},
	{"list", "list calculators"},
	{"karatsuba [t]", "show or set the Karatsuba threshold"},
	{"hex", "toggle hexadecimal output of fib"},
	{"help", "this help"},
	{"exit", "leave"},
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sCommands:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, h := range replHelp {
		fmt.Fprintf(r.out, "  %s%-22s%s %s\n", ui.ColorYellow(), h[0], ui.ColorReset(), h[1])
	}
}

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func (r *REPL) cmdFib(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	n, err := parseUint(args[0])
	if err != nil {
		return err
	}
	calc, err := r.factory.Get(r.cfg.Algo)
	if err != nil {
		return err
	}
	ctx, cancel := r.commandContext(ctx)
	defer cancel()

	start := time.Now()
	v, err := calc.Calculate(ctx, nil, 0, n, fibonacci.Options{})
	if apperrors.IsContextError(err) {
		return fmt.Errorf("F(%d) interrupted: %w", n, err)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	s := FormatValue(v, r.cfg.Hex)
	if len(s) > TruncationLimit {
		s = format.TruncateDigits(s, DisplayEdges)
	}
	fmt.Fprintf(r.out, "F(%d) = %s%s%s\n", n, ui.ColorGreen(), s, ui.ColorReset())
	fmt.Fprintf(r.out, "%s%d bits, %s, %s%s\n", ui.ColorDim(), v.BitLen(), format.FormatExecutionDuration(elapsed), calc.Name(), ui.ColorReset())
	return nil
}

// commandContext applies the per-command timeout to ctx.
func (r *REPL) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, r.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func (r *REPL) cmdPhi(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	n, err := parseUint(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := r.commandContext(ctx)
	defer cancel()

	res, err := r.engine.phi(ctx, n)
	if apperrors.IsContextError(err) {
		return fmt.Errorf("φ^%d interrupted: %w", n, err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "φ^%d = %s\n", n, res)
	return nil
}

func (r *REPL) cmdBinary(op string, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	res, err := r.engine.binary(op, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, res)
	return nil
}

func (r *REPL) cmdShl(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	k, err := parseUint(args[1])
	if err != nil {
		return err
	}
	if k > MaxShiftBits {
		return apperrors.ValidationError{Field: "shl", Message: fmt.Sprintf("shift count %d exceeds %d bits", k, MaxShiftBits)}
	}
	res, err := r.engine.shl(args[0], uint(k))
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, res)
	return nil
}

func (r *REPL) cmdBit(args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	i, err := parseUint(args[1])
	if err != nil {
		return err
	}
	set, err := r.engine.bit(args[0], uint(i))
	if err != nil {
		return err
	}
	if set {
		fmt.Fprintln(r.out, 1)
	} else {
		fmt.Fprintln(r.out, 0)
	}
	return nil
}

func (r *REPL) cmdDump(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	res, err := r.engine.dump(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, res)
	return nil
}

func (r *REPL) cmdCheck(args []string) error {
	n := uint64(100)
	if len(args) > 1 {
		return errUsage
	}
	if len(args) == 1 {
		var err error
		if n, err = parseUint(args[0]); err != nil {
			return err
		}
	}
	if err := r.engine.selfCheck(int(min(n, 5000))); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%sok%s: sequence, subtraction and factorial checks passed at %d-bit limbs\n",
		ui.ColorGreen(), ui.ColorReset(), r.cfg.LimbBits)
	return nil
}

func (r *REPL) cmdLimb(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	bits, err := strconv.Atoi(args[0])
	if err != nil || !fibonacci.ValidLimbWidth(bits) {
		return apperrors.ValidationError{Field: "limb", Message: fmt.Sprintf("invalid limb width %q (accepted values: 8, 16, 32, 64)", args[0])}
	}
	// Follow the width change when fib uses the default calculator.
	if r.cfg.Algo == fibonacci.DoublingCalculatorName(r.cfg.LimbBits) {
		r.cfg.Algo = fibonacci.DoublingCalculatorName(bits)
	}
	r.cfg.LimbBits = bits
	r.engine = newEngine(bits)
	fmt.Fprintf(r.out, "Limb width: %d bits\n", bits)
	return nil
}

func (r *REPL) cmdAlgo(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	name := strings.ToLower(args[0])
	if _, err := r.factory.Get(name); err != nil {
		return fmt.Errorf("unknown algorithm %q (available: %s)", name, strings.Join(r.factory.List(), ", "))
	}
	r.cfg.Algo = name
	fmt.Fprintf(r.out, "Algorithm: %s\n", name)
	return nil
}

func (r *REPL) cmdList() {
	for _, name := range r.factory.List() {
		marker := "  "
		if name == r.cfg.Algo {
			marker = ui.ColorGreen() + "* " + ui.ColorReset()
		}
		calc, err := r.factory.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(r.out, "%s%-14s %s\n", marker, name, calc.Name())
	}
}

func (r *REPL) cmdKaratsuba(args []string) error {
	switch len(args) {
	case 0:
		fmt.Fprintf(r.out, "Karatsuba threshold: %d limbs\n", bignum.KaratsubaThreshold())
		return nil
	case 1:
		t, err := strconv.Atoi(args[0])
		if err != nil || t < bignum.MinKaratsubaThreshold {
			return apperrors.ValidationError{Field: "karatsuba", Message: fmt.Sprintf("invalid threshold %q (minimum %d)", args[0], bignum.MinKaratsubaThreshold)}
		}
		prev := bignum.SetKaratsubaThreshold(t)
		fmt.Fprintf(r.out, "Karatsuba threshold: %d limbs (was %d)\n", t, prev)
		return nil
	}
	return errUsage
}

// engine runs the bignum commands at one limb width.
type engine interface {
	binary(op, a, b string) (string, error)
	shl(a string, k uint) (string, error)
	bit(a string, i uint) (bool, error)
	dump(a string) (string, error)
	phi(ctx context.Context, n uint64) (string, error)
	selfCheck(n int) error
}

func newEngine(bits int) engine {
	switch bits {
	case 8:
		return natEngine[uint8]{}
	case 16:
		return natEngine[uint16]{}
	case 32:
		return natEngine[uint32]{}
	}
	return natEngine[uint64]{}
}

type natEngine[L bignum.Limb] struct{}

func (natEngine[L]) parse(s string) (bignum.Nat[L], error) {
	v, err := bignum.ParseNatStrict[L](s)
	if err != nil {
		return v, fmt.Errorf("%q: %w", s, err)
	}
	return v, nil
}

func (e natEngine[L]) binary(op, as, bs string) (res string, err error) {
	a, err := e.parse(as)
	if err != nil {
		return "", err
	}
	b, err := e.parse(bs)
	if err != nil {
		return "", err
	}
	defer apperrors.RecoverArithmetic(op, &err)

	switch op {
	case "add":
		return a.Add(b).String(), nil
	case "sub":
		return a.Sub(b).String(), nil
	case "mul":
		return a.Mul(b).String(), nil
	case "cmp":
		return strconv.Itoa(a.Cmp(b)), nil
	case "divmod":
		q, rem, derr := a.DivMod(b)
		if derr != nil {
			return "", apperrors.ArithmeticError{Op: op, Cause: derr}
		}
		return fmt.Sprintf("%s remainder %s", q, rem), nil
	}
	return "", fmt.Errorf("unknown operation %q", op)
}

func (e natEngine[L]) shl(as string, k uint) (res string, err error) {
	a, err := e.parse(as)
	if err != nil {
		return "", err
	}
	if uint64(a.BitLen())+uint64(k) > MaxShiftBits {
		return "", apperrors.ValidationError{Field: "shl", Message: fmt.Sprintf("result would exceed %d bits", MaxShiftBits)}
	}
	defer apperrors.RecoverArithmetic("shl", &err)
	return a.Lsh(k).String(), nil
}

func (e natEngine[L]) bit(as string, i uint) (bool, error) {
	a, err := e.parse(as)
	if err != nil {
		return false, err
	}
	return a.Bit(i), nil
}

func (e natEngine[L]) dump(as string) (string, error) {
	a, err := e.parse(as)
	if err != nil {
		return "", err
	}
	return a.Dump(), nil
}

func (natEngine[L]) phi(ctx context.Context, n uint64) (string, error) {
	v, err := fibonacci.Golden[bignum.Nat[L]]().PowContext(ctx, n, nil)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// selfCheck builds F(0..n) by addition, walks it back down by subtraction
// and multiplies up n!, comparing every step with math/big.
func (natEngine[L]) selfCheck(n int) (err error) {
	defer apperrors.RecoverArithmetic("check", &err)
	n = max(n, 2)

	fibs := make([]bignum.Nat[L], n+1)
	fibs[1] = bignum.NatFromUint64[L](1)
	want := []*big.Int{big.NewInt(0), big.NewInt(1)}
	for i := 2; i <= n; i++ {
		fibs[i] = fibs[i-1].Add(fibs[i-2])
		want = append(want, new(big.Int).Add(want[i-1], want[i-2]))
		if fibs[i].Big().Cmp(want[i]) != 0 {
			return fmt.Errorf("F(%d) = %s by addition, want %s", i, fibs[i], want[i])
		}
	}
	for i := n; i >= 2; i-- {
		fibs[i].SubAssign(fibs[i-1])
		if !fibs[i].Equal(fibs[i-2]) {
			return fmt.Errorf("F(%d) - F(%d) = %s, want %s", i, i-1, fibs[i].Dump(), fibs[i-2].Dump())
		}
	}

	fact, wantFact := bignum.NatFromUint64[L](1), big.NewInt(1)
	for i := 2; i <= n; i++ {
		fact.MulAssign(bignum.NatFromUint64[L](uint64(i)))
		wantFact.Mul(wantFact, big.NewInt(int64(i)))
		if fact.Big().Cmp(wantFact) != 0 {
			return fmt.Errorf("%d! = %s, want %s", i, fact, wantFact)
		}
	}
	return nil
}
