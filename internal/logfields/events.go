package logfields

import "go.uber.org/zap"

func EventProvider(val string) zap.Field {
	return zap.String("event_provider", val)
}

func Event(val string) zap.Field {
	return zap.String("event", val)
}

func EventType(val string) zap.Field {
	return zap.String("github.event_type", val)
}

func DeliveryID(val string) zap.Field {
	return zap.String("github.delivery_id", val)
}

func UserAgent(val string) zap.Field {
	return zap.String("github.user_agent", val)
}

func HTTPStatus(val int) zap.Field {
	return zap.Int("http_status", val)
}
