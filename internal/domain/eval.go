package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	m "refine.dev/pkg/refine/internal/model"
	"refine.dev/pkg/refine/pkg/refinement"
)

// Implementation turns a method body into a dispatchable implementation.
func (w *World) Implementation(body m.Expr) refinement.Implementation {
	return func(call *refinement.Call) (refinement.Value, error) {
		return w.Eval(call, body)
	}
}

// Eval evaluates e. call is nil outside method bodies, where self, fields,
// arguments, sends and super are not available.
func (w *World) Eval(call *refinement.Call, e m.Expr) (refinement.Value, error) {
	switch {
	case e.Send != nil:
		return w.evalSend(call, e.Send)
	case e.Super != nil:
		return w.evalSuper(call, e.Super)
	case e.Add != nil:
		return w.evalAdd(call, e.Add)
	case e.Concat != nil:
		return w.evalConcat(call, e.Concat)
	case e.Field != "":
		return w.evalField(call, e.Field)
	case e.Arg != nil:
		if call == nil {
			return nil, fmt.Errorf("%w: arg outside a method body", ErrInvalidExpression)
		}

		if *e.Arg < 0 || *e.Arg >= len(call.Args) {
			return nil, fmt.Errorf("%w: arg %d of %d", ErrInvalidExpression, *e.Arg, len(call.Args))
		}

		return call.Args[*e.Arg], nil
	case e.Self:
		if call == nil {
			return nil, fmt.Errorf("%w: self outside a method body", ErrInvalidExpression)
		}

		return call.Receiver, nil
	case e.Class:
		if call == nil {
			return nil, fmt.Errorf("%w: class outside a method body", ErrInvalidExpression)
		}

		t := call.ReceiverType()

		return &ClassObject{Name: t.Name}, nil
	case e.Object != "":
		return w.Object(e.Object)
	}

	return e.Lit, nil
}

func (w *World) evalArgs(call *refinement.Call, exprs []m.Expr) ([]refinement.Value, error) {
	args := make([]refinement.Value, 0, len(exprs))

	for _, expr := range exprs {
		v, err := w.Eval(call, expr)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	return args, nil
}

func (w *World) evalSend(call *refinement.Call, send *m.SendExpr) (refinement.Value, error) {
	if call == nil {
		return nil, fmt.Errorf("%w: send outside a method body", ErrInvalidExpression)
	}

	var receiver refinement.Value

	switch {
	case send.Class != "":
		class, err := w.Class(send.Class)
		if err != nil {
			return nil, err
		}

		receiver = class
	case send.To == "" || send.To == "self":
		receiver = call.Receiver
	default:
		obj, err := w.Object(send.To)
		if err != nil {
			return nil, err
		}

		receiver = obj
	}

	args, err := w.evalArgs(call, send.Args)
	if err != nil {
		return nil, err
	}

	return call.Send(receiver, send.Method, args...)
}

func (w *World) evalSuper(call *refinement.Call, super *m.SuperExpr) (refinement.Value, error) {
	if call == nil {
		return nil, fmt.Errorf("%w: super outside a method body", ErrInvalidExpression)
	}

	if super.Args == nil {
		return call.Super(call.Args...)
	}

	args, err := w.evalArgs(call, super.Args)
	if err != nil {
		return nil, err
	}

	return call.Super(args...)
}

func (w *World) evalField(call *refinement.Call, name string) (refinement.Value, error) {
	if call == nil {
		return nil, fmt.Errorf("%w: field %q outside a method body", ErrInvalidExpression, name)
	}

	obj, ok := call.Receiver.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: field %q on %v", ErrInvalidExpression, name, call.Receiver)
	}

	v, ok := obj.Fields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrInvalidExpression, obj.Name, name)
	}

	return v, nil
}

func (w *World) evalAdd(call *refinement.Call, exprs []m.Expr) (refinement.Value, error) {
	args, err := w.evalArgs(call, exprs)
	if err != nil {
		return nil, err
	}

	var (
		sum      int
		fsum     float64
		floating bool
	)

	for _, arg := range args {
		switch v := arg.(type) {
		case int:
			sum += v
		case int64:
			sum += int(v)
		case uint64:
			sum += int(v)
		case float64:
			fsum += v
			floating = true
		default:
			return nil, fmt.Errorf("%w: cannot add %s", ErrInvalidExpression, FormatValue(arg))
		}
	}

	if floating {
		return fsum + float64(sum), nil
	}

	return sum, nil
}

func (w *World) evalConcat(call *refinement.Call, exprs []m.Expr) (refinement.Value, error) {
	args, err := w.evalArgs(call, exprs)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	for _, arg := range args {
		fmt.Fprint(&sb, arg)
	}

	return sb.String(), nil
}

// FormatValue renders a value for reports. Strings are quoted so that
// "12" and 12 stay distinguishable.
func FormatValue(v refinement.Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(val)
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatInt(int64(val), 10)
		}

		return strconv.FormatFloat(val, 'g', -1, 64)
	case fmt.Stringer:
		return val.String()
	}

	return fmt.Sprint(v)
}
