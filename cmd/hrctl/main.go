package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "coverage":
		handleCoverage(args)
	case "employee":
		handleEmployee(args)
	case "admin":
		handleAdmin(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: hrctl auth <token|logout|who>")
		return
	}

	switch args[0] {
	case "token":
		if len(args) < 2 {
			fmt.Println("Usage: hrctl auth token <jwt>")
			return
		}
		if err := saveToken(args[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✓ Token saved")
	case "logout":
		os.Remove(tokenFile())
		fmt.Println("✓ Logged out")
	case "who":
		token := loadToken()
		if token == "" {
			fmt.Println("Not logged in")
			return
		}
		fmt.Printf("✓ Logged in (token: %s...)\n", token[:20])
	default:
		fmt.Printf("unknown auth command: %s\n", args[0])
	}
}

func handleCoverage(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: hrctl coverage <assign|finalize>")
		return
	}

	switch args[0] {
	case "assign":
		fs := flag.NewFlagSet("assign", flag.ExitOnError)
		applicantID := fs.String("applicant", "", "applicant id")
		shiftID := fs.String("shift", "", "coverage shift id")
		fs.Parse(args[1:])

		if *applicantID == "" || *shiftID == "" {
			fmt.Println("Error: applicant and shift are required")
			fs.PrintDefaults()
			return
		}

		doPost("/coverage/assign-guard", map[string]string{
			"applicant_id": *applicantID,
			"shift_id":     *shiftID,
		})
	case "finalize":
		fs := flag.NewFlagSet("finalize", flag.ExitOnError)
		paymentID := fs.String("payment", "", "payment id")
		fs.Parse(args[1:])

		if *paymentID == "" {
			fmt.Println("Error: payment is required")
			fs.PrintDefaults()
			return
		}

		doPost("/coverage/finalize-payment", map[string]string{"payment_id": *paymentID})
	default:
		fmt.Printf("unknown coverage command: %s\n", args[0])
	}
}

func handleEmployee(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: hrctl employee <create|delete|set-password>")
		return
	}

	switch args[0] {
	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		name := fs.String("name", "", "employee name")
		idNumber := fs.String("id-number", "", "national id number")
		password := fs.String("password", "", "initial password")
		role := fs.String("role", "", "employee role")
		phone := fs.String("phone", "", "phone number")
		fs.Parse(args[1:])

		if *name == "" || *idNumber == "" || *password == "" || *role == "" {
			fmt.Println("Error: name, id-number, password and role are required")
			fs.PrintDefaults()
			return
		}

		doPost("/employees", map[string]string{
			"name":      *name,
			"id_number": *idNumber,
			"password":  *password,
			"role":      *role,
			"phone":     *phone,
		})
	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		userID := fs.String("user", "", "employee profile id")
		authUserID := fs.String("auth-user", "", "identity account id")
		fs.Parse(args[1:])

		if *userID == "" || *authUserID == "" {
			fmt.Println("Error: user and auth-user are required")
			fs.PrintDefaults()
			return
		}

		doPost("/employees/delete", map[string]string{
			"user_id":      *userID,
			"auth_user_id": *authUserID,
		})
	case "set-password":
		fs := flag.NewFlagSet("set-password", flag.ExitOnError)
		authID := fs.String("auth-user", "", "identity account id")
		password := fs.String("password", "", "new password")
		fs.Parse(args[1:])

		if *authID == "" || *password == "" {
			fmt.Println("Error: auth-user and password are required")
			fs.PrintDefaults()
			return
		}

		doPost("/employees/password", map[string]string{
			"auth_id":      *authID,
			"new_password": *password,
		})
	default:
		fmt.Printf("unknown employee command: %s\n", args[0])
	}
}

func handleAdmin(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: hrctl admin <impersonate|reset-password>")
		return
	}

	switch args[0] {
	case "impersonate":
		fs := flag.NewFlagSet("impersonate", flag.ExitOnError)
		target := fs.String("target", "", "target identity account id")
		fs.Parse(args[1:])

		if *target == "" {
			fmt.Println("Error: target is required")
			fs.PrintDefaults()
			return
		}

		doPost("/admin/impersonate", map[string]string{"target_user_id": *target})
	case "reset-password":
		fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
		authID := fs.String("auth-user", "", "identity account id")
		password := fs.String("password", "", "new password")
		fs.Parse(args[1:])

		if *authID == "" || *password == "" {
			fmt.Println("Error: auth-user and password are required")
			fs.PrintDefaults()
			return
		}

		doPost("/admin/reset-password", map[string]string{
			"auth_id":      *authID,
			"new_password": *password,
		})
	default:
		fmt.Printf("unknown admin command: %s\n", args[0])
	}
}

// Helper functions
func doPost(path string, payload any) {
	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", getAPIURL()+path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 200 {
		fmt.Printf("✓ %v\n", result)
	} else {
		fmt.Printf("✗ Request failed (%d): %v\n", resp.StatusCode, result)
	}
}

func getAPIURL() string {
	if url := os.Getenv("HRCTL_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.hrctl/token"
}

func saveToken(token string) error {
	home, _ := os.UserHomeDir()
	os.MkdirAll(home+"/.hrctl", 0700)
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func loadToken() string {
	data, _ := os.ReadFile(tokenFile())
	return string(data)
}

func addAuthHeader(req *http.Request) {
	token := loadToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func printUsage() {
	fmt.Print(`Arknat HR CLI

Usage:
  hrctl <command> [options]

Commands:
  auth       Token management (token, logout, who)
  coverage   Coverage shift operations (assign, finalize)
  employee   Employee operations (create, delete, set-password)
  admin      Admin operations (impersonate, reset-password) - admin token required
  help       Show this help message

Environment Variables:
  HRCTL_API    API endpoint (default: http://localhost:8080/api)

Examples:
  hrctl auth token <jwt>
  hrctl coverage assign -applicant A1 -shift S1
  hrctl employee create -name "..." -id-number 1001 -password secret -role "حارس أمن"
  hrctl admin reset-password -auth-user U1 -password newpass
`)
}
