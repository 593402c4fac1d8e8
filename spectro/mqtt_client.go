/*
 * Copyright (c) 2021 IBM Corp and others.
 *
 * All rights reserved. This program and the accompanying materials
 * are made available under the terms of the Eclipse Public License v2.0
 * and Eclipse Distribution License v1.0 which accompany this distribution.
 *
 * The Eclipse Public License is available at
 *    https://www.eclipse.org/legal/epl-2.0/
 * and the Eclipse Distribution License is available at
 *   http://www.eclipse.org/org/documents/edl-v10.php.
 *
 * Contributors:
 *    Seth Hoenig
 *    Allan Stockdill-Mander
 *    Mike Robertson
 */

package spectro

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"gocv.io/x/gocv"
)

const (
	MQTT_TOPIC_IMAGE    = "ffspectro/images/spectrum"
	MQTT_TOPIC_SPECTRUM = "ffspectro/frames/spectrum"
	MQTT_QOS            = 2
	MQTT_PUBLISH_WAIT   = 5 * time.Second
)

var defaultHandler mqtt.MessageHandler = func(client mqtt.Client, msg mqtt.Message) {
	DEBUGLogger.Printf("TOPIC: %s MSG: %s", msg.Topic(), msg.Payload())
}

func NewMQTTClient(broker string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID("ffspectro-" + uuid.NewString())
	opts.SetKeepAlive(2 * time.Second)
	opts.SetDefaultPublishHandler(defaultHandler)
	opts.SetPingTimeout(1 * time.Second)

	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to %s: %w", broker, token.Error())
	}
	INFOLogger.Printf("Connected to MQTT broker %s", broker)
	return c, nil
}

// Publisher sends finished spectra to an MQTT broker.
type Publisher struct {
	client mqtt.Client
}

func NewPublisher(client mqtt.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishFrame publishes the graph (jpg/base64) and the series (json).
func (p *Publisher) PublishFrame(frame *SpectralFrame) error {
	if err := publishImage(MQTT_TOPIC_IMAGE, frame.Image, p.client); err != nil {
		return stageError(STAGE_PUBLISH, ErrWriteFailed, err)
	}
	msg := SpectrumMessage{
		Timestamp:   frame.CapturedAt.UnixMilli(),
		Wavelengths: frame.Wavelengths,
		Intensities: frame.Intensities,
		Peaks:       frame.Peaks,
	}
	if err := publishJsonMsg(MQTT_TOPIC_SPECTRUM, msg, p.client); err != nil {
		return stageError(STAGE_PUBLISH, ErrWriteFailed, err)
	}
	return nil
}

func publishImage(topic string, mat gocv.Mat, mqttClient mqtt.Client) error {
	imgBuf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return err
	}
	defer imgBuf.Close()
	imgBytes := imgBuf.GetBytes()
	b64bytes := make([]byte, base64.StdEncoding.EncodedLen(len(imgBytes)))
	base64.StdEncoding.Encode(b64bytes, imgBytes)
	return waitToken(mqttClient.Publish(topic, MQTT_QOS, false, b64bytes))
}

func publishJsonMsg(topic string, obj interface{}, mqttClient mqtt.Client) error {
	msg, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return waitToken(mqttClient.Publish(topic, MQTT_QOS, false, msg))
}

func waitToken(token mqtt.Token) error {
	if !token.WaitTimeout(MQTT_PUBLISH_WAIT) {
		return fmt.Errorf("publish timed out after %v", MQTT_PUBLISH_WAIT)
	}
	return token.Error()
}
