package main

import (
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/danilovkiri/dk_go_link_resolver/internal/api/rest/modeldto"
)

func randStringBytes(n int) string {
	const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, n)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}

func main() {
	a := flag.String("a", "http://localhost:8080", "Server address")
	flag.Parse()
	address := *a

	const postRegular = "/"
	const postJSON = "/api/shorten"
	const postCollection = "/api/collection"
	const postSession = "/api/session"
	const getRegular = "/"
	const getAllByUserID = "/api/user/urls"
	const getRecent = "/api/recent"
	const deleteURL = "/api/user/urls/"
	const ping = "/ping"
	const iterations = 20

	client := resty.New()
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	// Performing ping loading
	log.Println("Performing ping loading")
	for i := 0; i < iterations; i++ {
		_, err := client.R().Get(address + ping)
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)

	// Opening a session so that subsequent links are owned
	log.Println("Opening a session")
	res, err := client.R().Post(address + postSession)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Session opened:", string(res.Body()))

	// Performing postRegular loading
	log.Println("Performing postRegular loading")
	var aliases []string
	for i := 0; i < iterations; i++ {
		payload := strings.NewReader("https://www." + randStringBytes(10) + ".com")
		res, err := client.R().SetBody(payload).Post(address + postRegular)
		if err != nil {
			log.Fatal(err)
		}
		if res.StatusCode() == 201 {
			aliasSlice := strings.Split(string(res.Body()), "/")
			aliases = append(aliases, aliasSlice[len(aliasSlice)-1])
		}
	}
	log.Println(aliases)
	time.Sleep(1 * time.Second)

	// Performing postJSON loading
	log.Println("Performing postJSON loading")
	for i := 0; i < iterations; i++ {
		URL := modeldto.RequestURL{
			URL: "https://www." + randStringBytes(10) + ".com",
		}
		reqBody, err := json.Marshal(URL)
		if err != nil {
			log.Fatal(err)
		}
		payload := strings.NewReader(string(reqBody))
		_, err = client.R().SetBody(payload).Post(address + postJSON)
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing postCollection loading
	log.Println("Performing postCollection loading")
	for i := 0; i < iterations; i++ {
		collection := modeldto.RequestCollection{
			URLs: []string{
				"https://www." + randStringBytes(10) + ".com",
				"https://www." + randStringBytes(10) + ".com",
			},
		}
		reqBody, err := json.Marshal(collection)
		if err != nil {
			log.Fatal(err)
		}
		payload := strings.NewReader(string(reqBody))
		_, err = client.R().SetBody(payload).Post(address + postCollection)
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing getRegular loading, every redirect records a hit
	log.Println("Performing getRegular loading")
	for i := 0; i < iterations; i++ {
		_, err := client.R().Get(address + getRegular + aliases[i])
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing stats loading
	log.Println("Performing stats loading")
	for i := 0; i < iterations; i++ {
		res, err := client.R().Get(address + "/api/links/" + aliases[i] + "/stats")
		if err != nil {
			log.Fatal(err)
		}
		if res.StatusCode() == 200 {
			log.Println("Iteration", i, string(res.Body()))
		}
	}
	time.Sleep(1 * time.Second)

	// Performing getRecent loading
	log.Println("Performing getRecent loading")
	for i := 0; i < iterations; i++ {
		_, err := client.R().Get(address + getRecent)
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)

	// Performing getAllByUserID loading
	log.Println("Performing getAllByUserID loading")
	for i := 0; i < iterations; i++ {
		res, err := client.R().Get(address + getAllByUserID)
		if err != nil {
			log.Fatal(err)
		}
		if res.StatusCode() == 200 {
			log.Println("Iteration", i, string(res.Body()))
		}
	}
	time.Sleep(1 * time.Second)

	// Performing delete loading
	log.Println("Performing delete loading")
	for i := 0; i < iterations; i++ {
		_, err := client.R().Delete(address + deleteURL + aliases[i])
		if err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1 * time.Second)
}
