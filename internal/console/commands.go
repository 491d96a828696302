package console

import (
	"errors"
	"fmt"
	"strings"

	"medfollow-client/internal/flow"
	"medfollow-client/internal/orchestrator"
)

var ErrQuit = errors.New("quit")

const Help = `commands:
  go <screen>          splash, language, profile, dashboard, vitals, appointment, postop-setup, chat
  lang <language>      English, Hindi, Telugu
  set <field> <value>  patientName, patientPhone, bpSystolic, bpDiastolic, sugar, bmiVal,
                       tempVal, doctorSelect, aptDate, aptTime, surgeryType, chatInput
  save                 save profile
  vital <group>        open bp, sugar, bmi or temp
  analyze              submit vitals
  book | yes | no      book appointment and answer the confirmation
  postop               open post-op care
  say <message>        send a chat message
  mic                  start or stop voice input
  audio <file>         submit a recorded clip to the open microphone
  theme | call | help | quit`

// Command is one parsed console line. Audio is set for the audio command only.
type Command struct {
	Actions []orchestrator.Action
	Audio   string
	Help    bool
}

func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	one := func(a orchestrator.Action) (Command, error) {
		return Command{Actions: []orchestrator.Action{a}}, nil
	}
	need := func(n int, usage string) error {
		if len(args) < n {
			return fmt.Errorf("usage: %s", usage)
		}
		return nil
	}

	switch verb {
	case "go":
		if err := need(1, "go <screen>"); err != nil {
			return Command{}, err
		}
		return parsed("navigate", fmt.Sprintf(`{"screen":%q}`, args[0]))
	case "lang":
		if err := need(1, "lang <language>"); err != nil {
			return Command{}, err
		}
		return parsed("select-language", fmt.Sprintf(`{"language":%q}`, args[0]))
	case "set":
		if err := need(1, "set <field> <value>"); err != nil {
			return Command{}, err
		}
		value := strings.TrimSpace(strings.TrimPrefix(rest, args[0]))
		return parsed("set-input", fmt.Sprintf(`{"field":%q,"value":%q}`, args[0], value))
	case "vital":
		if err := need(1, "vital <group>"); err != nil {
			return Command{}, err
		}
		return one(&orchestrator.ToggleVital{Group: args[0]})
	case "say":
		if rest == "" {
			return Command{}, fmt.Errorf("usage: say <message>")
		}
		return Command{Actions: []orchestrator.Action{
			&orchestrator.SetInput{Field: string(flow.FieldChatInput), Value: rest},
			&orchestrator.SendMessage{},
		}}, nil
	case "audio":
		if err := need(1, "audio <file>"); err != nil {
			return Command{}, err
		}
		return Command{Audio: rest}, nil
	case "save":
		return one(&orchestrator.SaveProfile{})
	case "analyze":
		return one(&orchestrator.SubmitVitals{})
	case "book":
		return one(&orchestrator.BookAppointment{})
	case "yes":
		return one(&orchestrator.ConfirmBooking{Accept: true})
	case "no":
		return one(&orchestrator.ConfirmBooking{Accept: false})
	case "postop":
		return one(&orchestrator.StartPostOp{})
	case "mic":
		return one(&orchestrator.ToggleVoice{})
	case "theme":
		return one(&orchestrator.ToggleTheme{})
	case "call":
		return one(&orchestrator.CallCustomerCare{})
	case "help":
		return Command{Help: true}, nil
	case "quit", "exit":
		return Command{}, ErrQuit
	}
	return Command{}, fmt.Errorf("unknown command %q (try help)", verb)
}

func parsed(name, body string) (Command, error) {
	a, err := orchestrator.ParseAction(name, []byte(body))
	if err != nil {
		return Command{}, err
	}
	return Command{Actions: []orchestrator.Action{a}}, nil
}
