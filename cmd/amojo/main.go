package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/beevik/guid"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/webitel/amojo"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger()

func main() {

	app := &cli.App{
		Name:    "amojo",
		Usage:   "amoCRM chat channel command line client",
		Version: amojo.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "secret",
				EnvVars: []string{"AMOJO_CHANNEL_SECRET"},
				Usage:   "Channel secret key",
			},
			&cli.StringFlag{
				Name:    "channel",
				EnvVars: []string{"AMOJO_CHANNEL_ID"},
				Usage:   "Channel id",
			},
			&cli.StringFlag{
				Name:    "referer",
				EnvVars: []string{"AMOJO_REFERER"},
				Usage:   "Account address, e.g. example.amocrm.ru",
			},
			&cli.StringFlag{
				Name:    "token",
				EnvVars: []string{"AMOJO_ACCOUNT_TOKEN"},
				Usage:   "amojo account token",
			},
			&cli.BoolFlag{
				Name:    "trace",
				EnvVars: []string{"AMOJO_TRACE"},
				Usage:   "Dump HTTP requests and responses",
			},
		},
		Commands: []*cli.Command{
			connectCmd,
			disconnectCmd,
			chatCmd,
			sendCmd,
			editCmd,
			reactCmd,
			typingCmd,
			deliveryCmd,
			historyCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("amojo")
	}
}

func client(c *cli.Context) (*amojo.Client, error) {
	return amojo.New(amojo.Options{
		Secret:       c.String("secret"),
		ChannelID:    c.String("channel"),
		Referer:      c.String("referer"),
		AccountToken: c.String("token"),
		Trace:        c.Bool("trace"),
		Log:          log,
	})
}

// print res to stdout as indented JSON
func output(res any) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(data))
	return err
}

var connectCmd = &cli.Command{
	Name:  "connect",
	Usage: "Connect the channel to the account",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Channel title shown to operators"},
	},
	Action: func(c *cli.Context) error {
		conn, err := client(c)
		if err != nil {
			return err
		}
		res, err := conn.ConnectChannel(c.Context, amojo.ConnectChannelOptions{
			Title: c.String("title"),
		})
		if err != nil {
			return err
		}
		log.Info().Str("scope_id", res.ScopeID).Msg("channel connected")
		return output(res)
	},
}

var disconnectCmd = &cli.Command{
	Name:  "disconnect",
	Usage: "Disconnect the channel from the account",
	Action: func(c *cli.Context) error {
		conn, err := client(c)
		if err != nil {
			return err
		}
		if err = conn.DisconnectChannel(c.Context); err != nil {
			return err
		}
		log.Info().Str("channel", conn.ChannelID()).Msg("channel disconnected")
		return nil
	},
}

var chatCmd = &cli.Command{
	Name:  "chat",
	Usage: "Create a new chat before its first message",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "conversation", Usage: "Conversation id; generated when empty"},
		&cli.StringFlag{Name: "user", Required: true, Usage: "User id"},
		&cli.StringFlag{Name: "name", Required: true, Usage: "User name"},
		&cli.StringFlag{Name: "avatar", Usage: "User avatar URL"},
		&cli.StringFlag{Name: "phone", Usage: "User profile phone"},
		&cli.StringFlag{Name: "email", Usage: "User profile email"},
		&cli.StringFlag{Name: "source", Usage: "Source external id"},
	},
	Action: func(c *cli.Context) error {
		conn, err := client(c)
		if err != nil {
			return err
		}
		conversation := c.String("conversation")
		if conversation == "" {
			conversation = guid.New().String()
			log.Info().Str("conversation", conversation).Msg("generated conversation id")
		}
		res, err := conn.CreateChat(c.Context, amojo.CreateChatOptions{
			ConversationID:   conversation,
			SourceExternalID: c.String("source"),
			UserID:           c.String("user"),
			UserName:         c.String("name"),
			UserAvatar:       c.String("avatar"),
			UserProfilePhone: c.String("phone"),
			UserProfileEmail: c.String("email"),
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var sendCmd = &cli.Command{
	Name:  "send",
	Usage: "Send a message into a chat",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "conversation", Usage: "Conversation id"},
		&cli.StringFlag{Name: "conversation-ref", Usage: "amoCRM conversation ref id"},
		&cli.StringFlag{Name: "type", Value: amojo.TypeText, Usage: "Message type"},
		&cli.StringFlag{Name: "text", Usage: "Message text"},
		&cli.StringFlag{Name: "media", Usage: "Media URL"},
		&cli.StringFlag{Name: "file-name", Usage: "Media file name"},
		&cli.Int64Flag{Name: "file-size", Usage: "Media file size, bytes"},
		&cli.StringFlag{Name: "sticker", Usage: "Sticker id"},
		&cli.StringFlag{Name: "sender", Usage: "Sender id"},
		&cli.StringFlag{Name: "sender-name", Usage: "Sender name"},
		&cli.StringFlag{Name: "receiver", Usage: "Receiver id"},
		&cli.StringFlag{Name: "reply-to", Usage: "Replied message id"},
		&cli.BoolFlag{Name: "silent", Usage: "Suppress account notifications"},
	},
	Action: func(c *cli.Context) error {
		conn, err := client(c)
		if err != nil {
			return err
		}
		res, err := conn.SendMessage(c.Context, amojo.SendMessageOptions{
			ConversationID:    c.String("conversation"),
			ConversationRefID: c.String("conversation-ref"),
			MessageType:       c.String("type"),
			MessageText:       c.String("text"),
			MessageMedia:      c.String("media"),
			MessageFileName:   c.String("file-name"),
			MessageFileSize:   c.Int64("file-size"),
			MessageStickerID:  c.String("sticker"),
			SenderID:          c.String("sender"),
			SenderName:        c.String("sender-name"),
			ReceiverID:        c.String("receiver"),
			ReplyToMsgID:      c.String("reply-to"),
			Silent:            c.Bool("silent"),
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var editCmd = &cli.Command{
	Name:  "edit",
	Usage: "Edit a sent message",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "conversation", Usage: "Conversation id"},
		&cli.StringFlag{Name: "conversation-ref", Usage: "amoCRM conversation ref id"},
		&cli.StringFlag{Name: "msgid", Required: true, Usage: "Id of the edited message"},
		&cli.StringFlag{Name: "type", Value: amojo.TypeText, Usage: "Message type"},
		&cli.StringFlag{Name: "text", Usage: "New message text"},
		&cli.StringFlag{Name: "media", Usage: "New media URL"},
		&cli.StringFlag{Name: "file-name", Usage: "New media file name"},
	},
	Action: func(c *cli.Context) error {
		conn, err := client(c)
		if err != nil {
			return err
		}
		res, err := conn.EditMessage(c.Context, amojo.EditMessageOptions{
			ConversationID:    c.String("conversation"),
			ConversationRefID: c.String("conversation-ref"),
			MsgID:             c.String("msgid"),
			MessageType:       c.String("type"),
			MessageText:       c.String("text"),
			MessageMedia:      c.String("media"),
			MessageFileName:   c.String("file-name"),
		})
		if err != nil {
			return err
		}
		return output(res)
	},
}

var reactCmd = &cli.Command{
	Name:  "react",
	Usage: "Set or unset a reaction on a message",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "conversation", Usage: "Conversation id"},
		&cli.StringFlag{Name: "conversation-ref", Usage: "amoCRM conversation ref id"},
		&cli.StringFlag{Name: "msgid", Required: true, Usage: "Id of the message reacted to"},
		&cli.StringFlag{Name: "user", Usage: "Reacting user id"},
		&cli.StringFlag{Name: "user-ref", Usage: "Reacting user ref id"},
		&cli.StringFlag{Name: "emoji", Required: true, Usage: "Reaction emoji"},
		&cli.BoolFlag{Name: "unset", Usage: "Remove the reaction instead"},
	},
	Action: func(c *cli.Context) error {
		conn, err := client(c)
		if err != nil {
			return err
		}
		action := amojo.ReactionSet
		if c.Bool("unset") {
			action = amojo.ReactionUnset
		}
		return conn.React(c.Context, amojo.ReactOptions{
			ConversationID:    c.String("conversation"),
			ConversationRefID: c.String("conversation-ref"),
			ID:                c.String("msgid"),
			UserID:            c.String("user"),
			UserRefID:         c.String("user-ref"),
			Type:              action,
			Emoji:             c.String("emoji"),
		})
	},
}

var typingCmd = &cli.Command{
	Name:  "typing",
	Usage: "Signal that someone is typing in a chat",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "conversation", Usage: "Conversation id"},
		&cli.StringFlag{Name: "conversation-ref", Usage: "amoCRM conversation ref id"},
		&cli.StringFlag{Name: "sender", Usage: "Typing user id"},
		&cli.StringFlag{Name: "sender-ref", Usage: "Typing user ref id"},
	},
	Action: func(c *cli.Context) error {
		conn, err := client(c)
		if err != nil {
			return err
		}
		return conn.Typing(c.Context, amojo.TypingOptions{
			ConversationID:    c.String("conversation"),
			ConversationRefID: c.String("conversation-ref"),
			SenderID:          c.String("sender"),
			SenderRefID:       c.String("sender-ref"),
		})
	},
}

var deliveryCmd = &cli.Command{
	Name:  "delivery",
	Usage: "Report the delivery status of a message",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "msgid", Required: true, Usage: "Id of the delivered message"},
		&cli.IntFlag{Name: "status", Value: amojo.DeliveryDelivered, Usage: "Delivery status code"},
		&cli.IntFlag{Name: "error-code", Usage: "Error code, with status -1"},
		&cli.StringFlag{Name: "error", Usage: "Error text, with status -1"},
	},
	Action: func(c *cli.Context) error {
		conn, err := client(c)
		if err != nil {
			return err
		}
		status := c.Int("status")
		opts := amojo.DeliveryStatusOptions{
			MsgID:          c.String("msgid"),
			DeliveryStatus: &status,
			Error:          c.String("error"),
		}
		if c.IsSet("error-code") {
			code := c.Int("error-code")
			opts.ErrorCode = &code
		}
		return conn.SetDeliveryStatus(c.Context, opts)
	},
}

var historyCmd = &cli.Command{
	Name:      "history",
	Usage:     "Fetch the message history of a chat",
	ArgsUsage: "<conversation_ref_id>",
	Action: func(c *cli.Context) error {
		conn, err := client(c)
		if err != nil {
			return err
		}
		res, err := conn.GetHistory(c.Context, c.Args().First())
		if err != nil {
			return err
		}
		return output(res)
	},
}
