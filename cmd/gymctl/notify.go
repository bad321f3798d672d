package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/davicafu/gymlab/internal/console"
	lq "github.com/davicafu/gymlab/internal/listquery"
	notificationDomain "github.com/davicafu/gymlab/internal/notification/domain"
)

var notifyCmd = &cobra.Command{
	Use:     "notify <templateId> <clientId>",
	Short:   "Envía una plantilla a un cliente",
	GroupID: "entities",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		templateID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid template id %q", args[0])
		}
		clientID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client id %q", args[1])
		}

		var n notificationDomain.Notification
		msg, err := api.Post(context.Background(), "/notification/send", map[string]int64{
			"templateId": templateID, "clientId": clientID, "paramLoggedIdUser": api.LoggedUserID(),
		}, &n)
		if err != nil {
			return expire(err)
		}
		fmt.Printf("📨 %s → %s (id=%d)\n", msg, n.Recipient, n.ID)
		return nil
	},
}

func notificationEntity() entity[notificationDomain.Notification, console.NotificationFilters] {
	return entity[notificationDomain.Notification, console.NotificationFilters]{
		name:     "notification",
		short:    "envíos",
		schema:   console.Notifications(),
		columns:  console.NotificationColumns(),
		readOnly: true,
		flags: func(cmd *cobra.Command) {
			cmd.Flags().Int64("client", 0, "id del cliente")
			cmd.Flags().String("channel", "", "email o whatsapp")
			cmd.Flags().String("delivery", "", "sent, failed o pending")
		},
		filters: func(cmd *cobra.Command, f *console.NotificationFilters) error {
			client, _ := cmd.Flags().GetInt64("client")
			channel, _ := cmd.Flags().GetString("channel")
			delivery, _ := cmd.Flags().GetString("delivery")
			f.ClientID = f.ClientID.Set(client)
			f.Channel = lq.Text(channel)
			f.DeliveryStatus = lq.Text(delivery)
			return nil
		},
	}
}
