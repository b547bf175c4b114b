// tools/checkenv — preflight check for required environment variables
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	required := []string{
		"BOT_TOKEN",
		"APP_ID",
	}
	oneOf := []string{
		"GOOGLE_FACT_CHECK_API_KEY",
		"OPENAI_API_KEY",
	}

	missing := []string{}
	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		} else {
			fmt.Printf("%s is set\n", key)
		}
	}

	anySource := false
	for _, key := range oneOf {
		if os.Getenv(key) != "" {
			fmt.Printf("%s is set\n", key)
			anySource = true
		}
	}
	if !anySource {
		missing = append(missing, "GOOGLE_FACT_CHECK_API_KEY or OPENAI_API_KEY")
	}

	if len(missing) > 0 {
		fmt.Printf("Missing environment variables: %v\n", missing)
		os.Exit(1)
	}
	fmt.Println("All required environment variables are set.")
}
